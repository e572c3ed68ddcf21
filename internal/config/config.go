// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig
	Database DatabaseConfig
	Server   ServerConfig
	Import   ImportConfig
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
	// Dir enables JSON file logs under Dir/YYYY/MM when set.
	Dir string
}

// DatabaseConfig holds the connection used to persist records
type DatabaseConfig struct {
	Driver string `validate:"oneof=postgres sqlite"`
	URL    string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port         string `validate:"required,numeric"`
	UploadDir    string `validate:"required"`
	MaxUploadMB  int64  `validate:"min=1"`
	AllowOrigins []string
}

// ImportConfig holds defaults applied to every import
type ImportConfig struct {
	Encoding string
	Type     string `validate:"omitempty,oneof=append update"`
}

var validate = validator.New()

// Load reads configuration from environment variables, after loading a
// .env file from the working directory when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Level: strings.ToLower(getEnvOrDefault("SHEETIMPORT_LOG_LEVEL", "info")),
			Dir:   getEnvOrDefault("SHEETIMPORT_LOG_DIR", ""),
		},
		Database: DatabaseConfig{
			Driver: getEnvOrDefault("DB_DRIVER", "postgres"),
			URL:    getEnvOrDefault("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "8080"),
			UploadDir:    getEnvOrDefault("UPLOAD_DIR", "./uploads"),
			MaxUploadMB:  getEnvInt64OrDefault("MAX_UPLOAD_MB", 10),
			AllowOrigins: splitList(getEnvOrDefault("CORS_ORIGINS", "")),
		},
		Import: ImportConfig{
			Encoding: getEnvOrDefault("SHEETIMPORT_ENCODING", ""),
			Type:     getEnvOrDefault("SHEETIMPORT_TYPE", ""),
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// HasDatabase reports whether records can be persisted.
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
