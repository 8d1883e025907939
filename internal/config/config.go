package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the dream service.
// Environment variables are parsed from the SOMNOLOGIA_ prefix,
// e.g. SOMNOLOGIA_HTTP_PORT, SOMNOLOGIA_DB_DRIVER.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage Configuration
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/somnologia.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Interpreter Configuration
	Interpreter        string        `envconfig:"INTERPRETER" default:"artemidorus"`
	InterpreterURL     string        `envconfig:"INTERPRETER_URL" default:""`
	InterpreterTimeout time.Duration `envconfig:"INTERPRETER_TIMEOUT" default:"30s"`

	// Number of dreams returned in the dashboard's recent list.
	DashboardRecent int `envconfig:"DASHBOARD_RECENT" default:"3"`
}

// Validate checks driver and provider selections and their required settings.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	switch c.Interpreter {
	case "artemidorus":
	case "remote":
		if c.InterpreterURL == "" {
			return fmt.Errorf("INTERPRETER_URL is required for the remote interpreter")
		}
	default:
		return fmt.Errorf("unsupported INTERPRETER: %s", c.Interpreter)
	}

	if c.DashboardRecent <= 0 {
		return fmt.Errorf("DASHBOARD_RECENT must be positive")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SOMNOLOGIA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Str("interpreter", cfg.Interpreter).
		Int("port", cfg.HTTPPort).
		Int("dashboard_recent", cfg.DashboardRecent).
		Msg("Configuration loaded")

	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
