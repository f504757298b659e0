// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

// ------------------- logger initialization -------------------

// InitLogger creates or reinitializes the logging system. It:
// - Ensures `./logs` exists.
// - Creates a timestamped log file in `logs/`.
// - Writes logs to both the file and stdout.
// - Configures separate loggers (Info, Warn, Error, Debug) with consistent prefixes & flags.
func InitLogger() error {
	// ensure logs directory exists
	if err := os.MkdirAll("./logs", 0700); err != nil {
		return err
	}

	// create a timestamped log file
	logFileName := filepath.Join("logs", time.Now().Format("2006-01-02_15-04-05")+".log")
	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
	if err != nil {
		return err
	}

	// write logs to both stdout and the file
	useWriter(io.MultiWriter(os.Stdout, file))
	return nil
}

// useWriter points all four loggers at the given writer.
func useWriter(w io.Writer) {
	Info = log.New(w, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(w, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(w, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(w, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// SetLogLevel adjusts the Debug logger depending on environment.
// In production debug output is discarded entirely; everywhere else it
// stays on the multi-writer configured by InitLogger.
func SetLogLevel(env string) {
	if env == "production" {
		Debug.SetOutput(io.Discard)
	}
}

// init wires the loggers at package load time. If the log file cannot
// be created the loggers fall back to stdout only; a read-only
// filesystem must not stop the site from serving.
func init() {
	if err := InitLogger(); err != nil {
		useWriter(os.Stdout)
		Error.Printf("logger: file logging unavailable, stdout only: %v", err)
	}
}
