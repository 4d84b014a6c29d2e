package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverPGX      = "pgx"
	DriverSQLite   = "sqlite"
)

// Config struct to hold the configuration settings
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	Progression   ProgressionConfig   `yaml:"progression"`
	Events        EventsConfig        `yaml:"events"`
	Observability ObservabilityConfig `yaml:"observability"`
	Export        ExportConfig        `yaml:"export"`
}

// DatabaseConfig holds the storage connection settings.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DATABASE_DRIVER"`
	DSN    string `yaml:"dsn" env:"DATABASE_URL"`
}

// ProgressionConfig holds the starting values for newly registered players.
type ProgressionConfig struct {
	InitialThreshold   int   `yaml:"initial_threshold" env:"PROGRESSION_INITIAL_THRESHOLD"`
	InitialRewardCount int   `yaml:"initial_reward_count" env:"PROGRESSION_INITIAL_REWARD_COUNT"`
	Seed               int64 `yaml:"seed" env:"PROGRESSION_SEED"` // 0 draws a seed from crypto/rand
}

// EventsConfig holds domain event publishing settings.
type EventsConfig struct {
	NATSURL string `yaml:"nats_url" env:"NATS_URL"`  // empty uses an in-process channel
	Stream  string `yaml:"stream" env:"NATS_STREAM"` // JetStream stream retaining events; empty disables
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment     string `yaml:"environment" env:"ENV"`
	LogLevel        string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat       string `yaml:"log_format" env:"LOG_FORMAT"` // json|text
	MetricsTextfile string `yaml:"metrics_textfile" env:"METRICS_TEXTFILE"`
}

// ExportConfig holds report output settings.
type ExportConfig struct {
	Directory string `yaml:"directory" env:"EXPORT_DIR"`
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "file:progression.db?_pragma=foreign_keys(1)",
		},
		Progression: ProgressionConfig{
			InitialThreshold:   1000,
			InitialRewardCount: 1,
		},
		Observability: ObservabilityConfig{
			Environment: "development",
			LogLevel:    "info",
			LogFormat:   "text",
		},
		Export: ExportConfig{
			Directory: ".",
		},
	}
}

// LoadConfig loads the configuration from a YAML file, then applies
// environment overrides. A missing file falls back to defaults plus env.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail deep inside the app.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverPGX, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn must be set")
	}
	if c.Events.Stream != "" && c.Events.NATSURL == "" {
		return errors.New("events.stream requires events.nats_url")
	}
	if c.Progression.InitialThreshold <= 0 {
		return fmt.Errorf("initial_threshold must be positive, got %d", c.Progression.InitialThreshold)
	}
	if c.Progression.InitialRewardCount < 0 {
		return fmt.Errorf("initial_reward_count must not be negative, got %d", c.Progression.InitialRewardCount)
	}
	return nil
}
