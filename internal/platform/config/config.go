// Package config loads and validates process-wide configuration from the
// environment. The resulting Config value is constructed once at startup and
// passed into component constructors; nothing reads the environment after that.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the server.
type Config struct {
	Port string `env:"APP_PORT" envDefault:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Session tokens
	JWTSecret        string `env:"JWT_SECRET_KEY,required"`
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"30"`

	// OAuth providers. A provider is enabled only when both its client ID
	// and secret are set.
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
	AppleClientID      string `env:"APPLE_CLIENT_ID"`
	AppleClientSecret  string `env:"APPLE_CLIENT_SECRET"`
	AppleRedirectURL   string `env:"APPLE_REDIRECT_URL"`

	// Redis (optional; the OAuth state store falls back to memory without it)
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	RunMigrations bool `env:"RUN_MIGRATIONS"`
}

// weakSecrets are known default/placeholder values that must never be used
// as a signing secret.
var weakSecrets = []string{
	"your-secret-key-change-in-production",
	"dev-jwt-secret-key-not-for-production-use-only",
	"change-me",
	"secret",
	"password",
	"12345",
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate enforces the signing-secret and token-lifetime policy.
func (c *Config) validate() error {
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 bytes, got %d", len(c.JWTSecret))
	}
	for _, weak := range weakSecrets {
		if strings.EqualFold(c.JWTSecret, weak) {
			return fmt.Errorf("JWT_SECRET_KEY is a known default value; use a cryptographically secure secret")
		}
	}
	if c.JWTExpireMinutes < 1 || c.JWTExpireMinutes > 1440 {
		return fmt.Errorf("JWT_EXPIRE_MINUTES must be between 1 and 1440, got %d", c.JWTExpireMinutes)
	}
	return nil
}

// TokenTTL returns the configured session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpireMinutes) * time.Minute
}

// GoogleOAuthEnabled reports whether Google OAuth credentials are configured.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// AppleOAuthEnabled reports whether Apple OAuth credentials are configured.
func (c *Config) AppleOAuthEnabled() bool {
	return c.AppleClientID != "" && c.AppleClientSecret != ""
}

// RedisAddr returns the Redis address, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}
