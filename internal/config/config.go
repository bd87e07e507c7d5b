// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         int     // HTTP listen port
	LogLevel     string  // debug, info, warn, error
	DevMode      bool    // Pretty console logging, verbose errors
	SamplingRate float64 // Samples per time unit for all spectral estimates
	SampleCount  int     // Number of samples requested per symbol
	UniversePath string  // Optional YAML file overriding the default analysis universe
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnvAsInt("COHERENCE_PORT", 8000),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DevMode:      getEnvAsBool("DEV_MODE", false),
		SamplingRate: getEnvAsFloat("SAMPLING_RATE", 1.0),
		SampleCount:  getEnvAsInt("SAMPLE_COUNT", 128),
		UniversePath: getEnv("UNIVERSE_CONFIG", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.SamplingRate <= 0 {
		return fmt.Errorf("sampling rate must be positive, got %f", c.SamplingRate)
	}
	if c.SampleCount < 2 {
		return fmt.Errorf("sample count must be at least 2, got %d", c.SampleCount)
	}
	return nil
}

// getEnv retrieves an environment variable value, returning a fallback if unset
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvAsFloat retrieves an environment variable as a float64
func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvAsBool retrieves an environment variable as a boolean
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
