// Package config reads process configuration from the environment, after
// loading an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port           string
	LogLevel       string
	LogFormat      string
	ModelsConfig   string
	ResourcesDir   string
	SettingsPath   string
	AllowedOrigin  string
	RequestTimeout time.Duration
}

// Load reads the given .env files (missing ones are skipped) and then the
// environment. With no files it tries ".env" in the working directory.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return NewConfig()
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	timeout, err := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "60"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be a positive integer, got %q", os.Getenv("REQUEST_TIMEOUT_SECONDS"))
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		ModelsConfig:   getEnv("MODELS_CONFIG", "config/models.yaml"),
		ResourcesDir:   getEnv("RESOURCES_DIR", "resources"),
		SettingsPath:   getEnv("SETTINGS_PATH", "data/settings.yaml"),
		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", "*"),
		RequestTimeout: time.Duration(timeout) * time.Second,
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
