package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/zamorem/isdoc-gen/internal/logger"
)

// Config holds process settings read from the environment. Supplier and
// recipient data live in the YAML configuration file, not here.
type Config struct {
	// Input defaults
	DefaultConfigPath string
	DefaultCountry    string

	// Document settings
	IssuingSystem string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Defaults returns the settings used when the environment sets nothing.
func Defaults() *Config {
	return &Config{
		DefaultCountry: "CZ",
		IssuingSystem:  "isdoc-gen",
		LogLevel:       "info",
		LogFormat:      "console",
		LogTimeFormat:  "2006-01-02T15:04:05Z07:00",
		LogOutput:      "stderr",
	}
}

func Load() (*Config, error) {
	d := Defaults()
	config := &Config{
		DefaultConfigPath: getEnv("ISDOC_CONFIG", d.DefaultConfigPath),
		DefaultCountry:    strings.ToUpper(getEnv("ISDOC_COUNTRY", d.DefaultCountry)),
		IssuingSystem:     getEnv("ISDOC_ISSUING_SYSTEM", d.IssuingSystem),
		LogLevel:          getEnv("LOG_LEVEL", d.LogLevel),
		LogFormat:         getEnv("LOG_FORMAT", d.LogFormat),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", d.LogTimeFormat),
		LogOutput:         getEnv("LOG_OUTPUT", d.LogOutput),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if len(c.DefaultCountry) != 2 {
		return fmt.Errorf("ISDOC_COUNTRY must be a two-letter country code, got %q", c.DefaultCountry)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
