package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// SeedSource names where the catalogue is loaded from at startup
type SeedSource string

const (
	SeedSourceFile  SeedSource = "file"
	SeedSourceMongo SeedSource = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port     string `envconfig:"PORT" default:"5000"`
	GinMode  string `envconfig:"GIN_MODE" default:"release"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Seed settings
	SeedSource      SeedSource `envconfig:"SEED_SOURCE" default:"file"`
	SeedDir         string     `envconfig:"SEED_DIR" default:"seeds"`
	MongodbURL      string     `envconfig:"MONGODB_URL"`
	MongodbDatabase string     `envconfig:"MONGODB_DATABASE" default:"discography"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks combinations envconfig tags cannot express
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}

	switch c.SeedSource {
	case SeedSourceFile:
		if c.SeedDir == "" {
			return fmt.Errorf("SEED_DIR is required when SEED_SOURCE is %q", SeedSourceFile)
		}
	case SeedSourceMongo:
		if c.MongodbURL == "" {
			return fmt.Errorf("MONGODB_URL is required when SEED_SOURCE is %q", SeedSourceMongo)
		}
	default:
		return fmt.Errorf("unknown SEED_SOURCE %q", c.SeedSource)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// RequireMongo reports an error unless a MongoDB URL is configured. Tools
// that always talk to MongoDB call it whatever SEED_SOURCE says.
func (c *Config) RequireMongo() error {
	if c.MongodbURL == "" {
		return fmt.Errorf("MONGODB_URL is required")
	}
	return nil
}

// SlogLevel returns the configured log level, falling back to info
func (c *Config) SlogLevel() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLogLevel maps debug, info, warn and error onto slog levels
func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", value)
	}
}
