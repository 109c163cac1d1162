// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// SQLite database file
	DBPath string

	// Local filesystem layout
	UploadsDir string
	OutputsDir string

	// Auth
	SessionSecret string
	AppPassword   string
	SkipPassword  bool

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI drafting
	AnthropicAPIKey string
	AIModel         string

	// Optional S3-compatible storage for uploads
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBPath:     envOrDefault("DB_PATH", "data/newsletters.db"),
		UploadsDir: envOrDefault("UPLOADS_DIR", "uploads"),
		OutputsDir: envOrDefault("OUTPUTS_DIR", "outputs"),

		SessionSecret: envOrDefault("SESSION_SECRET_KEY", "dev-secret-change-me"),
		AppPassword:   envOrDefault("APP_PASSWORD", "admin"),
		SkipPassword:  os.Getenv("SKIP_PASSWORD") == "1",

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AIModel:         envOrDefault("AI_MODEL", "claude-sonnet-4-20250514"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	if cfg.Env == "production" {
		if cfg.SessionSecret == "dev-secret-change-me" {
			return nil, fmt.Errorf("SESSION_SECRET_KEY must be set in production")
		}
		if cfg.AppPassword == "admin" && !cfg.SkipPassword {
			return nil, fmt.Errorf("APP_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey host:port address.
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// S3Enabled reports whether uploads should go to S3-compatible storage
// instead of the local uploads directory.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
