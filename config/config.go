// Package config loads application configuration from the environment.
// File: config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// APIBaseURL is the external backend this application consumes.
	// All domain data lives behind it; nothing is persisted locally.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000/api"`

	ApplicationURL string `env:"APPLICATION_URL" envDefault:"http://localhost:8080"`
	WebsocketURL   string `env:"WEBSOCKET_URL" envDefault:"ws://localhost:8080/gallery-updates"`

	ListenAddr    string `env:"LISTEN_ADDR" envDefault:":8080"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"secret"`
	Env           string `env:"APP_ENV" envDefault:"development"`

	// CloudinaryUploadURL lets tests point the upload adapter at a stub
	// host. The production value is derived from the signature bundle.
	CloudinaryUploadURL string `env:"CLOUDINARY_UPLOAD_URL"`

	// MetricsEnabled gates CloudWatch metric publication.
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"false"`
}

// IsProduction returns true when running in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	// missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
