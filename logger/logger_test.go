// File: logger/logger_test.go
package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test: useWriter carries all four levels with their prefixes
func TestUseWriter(t *testing.T) {
	var buf bytes.Buffer
	useWriter(&buf)
	defer func() { assert.NoError(t, InitLogger()) }()

	Info.Printf("hello")
	Warn.Printf("careful")
	Error.Printf("broken")
	Debug.Printf("verbose")

	out := buf.String()
	assert.Contains(t, out, "INFO: ")
	assert.Contains(t, out, "WARN: ")
	assert.Contains(t, out, "ERROR: ")
	assert.Contains(t, out, "DEBUG: ")
	assert.Contains(t, out, "hello")
}

// Test: a file squatting on the logs path fails init without killing
// the previously configured loggers
func TestInitLoggerDirectoryConflict(t *testing.T) {
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(t.TempDir()))
	defer func() { assert.NoError(t, os.Chdir(wd)) }()

	assert.NoError(t, os.WriteFile("logs", []byte("not a directory"), 0600))

	assert.Error(t, InitLogger())
	assert.NotNil(t, Info)
	assert.NotPanics(t, func() { Info.Printf("still usable after failed init") })
}

// Test: init writes into a timestamped file under logs/
func TestInitLoggerCreatesLogFile(t *testing.T) {
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(t.TempDir()))
	defer func() {
		assert.NoError(t, os.Chdir(wd))
		assert.NoError(t, InitLogger())
	}()

	assert.NoError(t, InitLogger())
	Info.Printf("first entry")

	matches, err := filepath.Glob(filepath.Join("logs", "*.log"))
	assert.NoError(t, err)
	assert.NotEmpty(t, matches)
}
