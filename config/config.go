// Package config reads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Environment   string
	SnapshotPath  string
	TokenSecret   string
	TokenTTL      time.Duration
	APILatency    time.Duration
	SlowLatency   time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// Load reads configuration from environment variables, after loading a
// .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		SnapshotPath: getEnv("SNAPSHOT_PATH", "cinevault_session.json"),
		TokenSecret:  getEnv("TOKEN_SECRET", "cinevault-dev-secret"),
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.APILatency, err = getDuration("API_LATENCY", time.Second); err != nil {
		return nil, err
	}
	if cfg.SlowLatency, err = getDuration("SLOW_LATENCY", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetryDelay, err = getDuration("RETRY_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.RetryAttempts, err = getInt("RETRY_ATTEMPTS", 3); err != nil {
		return nil, err
	}

	if cfg.IsProduction() && os.Getenv("TOKEN_SECRET") == "" {
		return nil, errors.New("TOKEN_SECRET environment variable is required in production")
	}
	return cfg, nil
}

// IsProduction reports whether the production environment is configured.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, value)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: invalid count %q", key, value)
	}
	return n, nil
}
