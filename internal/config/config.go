// Package config reads the application configuration from the
// environment. Call godotenv.Load in main before FromEnv so a local
// .env file is honored.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Env var names.
const (
	EnvAPIBaseURL  = "KRAKARAN_API_URL"
	EnvHTTPTimeout = "KRAKARAN_HTTP_TIMEOUT"
)

// DefaultHTTPTimeout applies when KRAKARAN_HTTP_TIMEOUT is unset.
const DefaultHTTPTimeout = 15 * time.Second

// Config holds everything needed to wire the application.
type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
}

// FromEnv builds a Config from the environment. The API base URL is
// required; everything else has defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		HTTPTimeout: DefaultHTTPTimeout,
	}

	cfg.APIBaseURL = strings.TrimRight(os.Getenv(EnvAPIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("config: %s is not set", EnvAPIBaseURL)
	}

	if raw := os.Getenv(EnvHTTPTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: parsing %s: %w", EnvHTTPTimeout, err)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}
