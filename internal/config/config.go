// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir            string // Base directory for intake.db and attachments (always absolute)
	LogLevel           string
	Port               int
	DevMode            bool
	CurrencySymbol     string
	CheckpointSchedule string // cron spec for periodic snapshot checkpoints
}

// Load reads configuration from environment variables, with an optional
// .env file for development.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("INTAKE_DATA_DIR", "")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".intake")
	}

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory to absolute path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	port := 8090
	if portStr := getEnv("INTAKE_PORT", ""); portStr != "" {
		parsed, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid INTAKE_PORT value %q: %w", portStr, err)
		}
		port = parsed
	}

	return &Config{
		DataDir:            absDataDir,
		LogLevel:           getEnv("INTAKE_LOG_LEVEL", "info"),
		Port:               port,
		DevMode:            getEnv("INTAKE_DEV_MODE", "false") == "true",
		CurrencySymbol:     getEnv("INTAKE_CURRENCY_SYMBOL", "$"),
		CheckpointSchedule: getEnv("INTAKE_CHECKPOINT_SCHEDULE", "@every 5m"),
	}, nil
}

// DatabasePath returns the path of the intake database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "intake.db")
}

// getEnv retrieves an environment variable value, returning a fallback if
// the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
