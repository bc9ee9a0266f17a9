// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
)

// Configuration errors.
var (
	ErrInvalidAPIBaseURL  = errors.New("API_BASE_URL must be an absolute http(s) URL")
	ErrRedisURLRequired   = errors.New("REDIS_URL is required for the redis storage backend")
	ErrDatabaseRequired   = errors.New("DATABASE_URL is required for the postgres storage backend")
	ErrUnknownBackend     = errors.New("STORAGE_BACKEND must be memory, redis or postgres")
	ErrInvalidDurationCfg = errors.New("durations must be positive")
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Remote user API, e.g. http://localhost:3001/api
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:3001/api"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"35s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Browser storage backend: memory, redis or postgres
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	RedisURL       string `env:"REDIS_URL"`
	DatabaseURL    string `env:"DATABASE_URL"`

	// Lifetime of the durable scope (persistent cookie + stored entries)
	DurableTTL time.Duration `env:"DURABLE_TTL" envDefault:"720h"`
	// Lifetime of session-scoped entries once the browser stops writing them
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	// How often expired storage entries are purged
	StorageSweepInterval time.Duration `env:"STORAGE_SWEEP_INTERVAL" envDefault:"10m"`

	// How long the create confirmation stays up before redirecting
	CreateRedirectDelay time.Duration `env:"CREATE_REDIRECT_DELAY" envDefault:"1500ms"`

	// Request body size limit in bytes (default 64KB, forms only)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidAPIBaseURL
	}

	switch c.StorageBackend {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return ErrRedisURLRequired
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return ErrDatabaseRequired
		}
	default:
		return ErrUnknownBackend
	}

	if c.DurableTTL <= 0 || c.SessionTTL <= 0 || c.StorageSweepInterval <= 0 || c.CreateRedirectDelay <= 0 {
		return ErrInvalidDurationCfg
	}
	return nil
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
