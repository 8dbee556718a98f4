// Package config reads the application configuration from environment
// variables. Mains load a .env file first via godotenv, matching how the
// SMTP credentials are expected to be provisioned.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	SMTP   SMTPConfig
	Report ReportConfig
	Server ServerConfig
	Watch  WatchConfig
}

// SMTPConfig holds the outgoing mail account. Empty credentials disable
// delivery; everything else keeps working.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// ReportConfig holds rendering settings.
type ReportConfig struct {
	CompanyName   string
	OutputDir     string
	MaxFileSizeMB int64
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Port string
}

// WatchConfig holds the drop-folder automation settings.
type WatchConfig struct {
	Dir      string
	Interval time.Duration
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		SMTP: SMTPConfig{
			Host:     getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvIntOrDefault("SMTP_PORT", 587),
			Username: getEnvOrDefault("SMTP_USER", ""),
			Password: getEnvOrDefault("SMTP_PASSWORD", ""),
		},
		Report: ReportConfig{
			CompanyName:   getEnvOrDefault("COMPANY_NAME", "Business Analytics Corp"),
			OutputDir:     getEnvOrDefault("OUTPUT_DIR", "outputs"),
			MaxFileSizeMB: int64(getEnvIntOrDefault("MAX_FILE_SIZE_MB", 50)),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Watch: WatchConfig{
			Dir:      getEnvOrDefault("WATCH_DIR", "incoming"),
			Interval: getEnvDurationOrDefault("WATCH_INTERVAL", 5*time.Minute),
		},
	}
}

// EmailConfigured reports whether delivery credentials are present.
func (c *Config) EmailConfigured() bool {
	return c.SMTP.Username != "" && c.SMTP.Password != ""
}

// EnsureOutputDir creates the report output directory if needed.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Report.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", c.Report.OutputDir, err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
