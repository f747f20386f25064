// Package config loads cookbook settings from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/poiesic/cookbook/storage"
)

// Storage drivers.
const (
	DriverJSON   = "json"
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Drivers lists the supported storage drivers.
var Drivers = []string{DriverJSON, DriverBadger, DriverSQLite, DriverMemory}

// ErrInvalidLogLevel is returned for an unsupported log level.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config holds cookbook settings.
type Config struct {
	DataDir     string `yaml:"data_dir" json:"data_dir" toml:"data_dir" env:"COOKBOOK_DATA_DIR" env-default:"." env-description:"Directory holding the data files"`
	Driver      string `yaml:"driver" json:"driver" toml:"driver" env:"COOKBOOK_STORAGE_DRIVER" env-default:"json" env-description:"Storage driver: json, badger, sqlite or memory"`
	LogLevel    string `yaml:"log_level" json:"log_level" toml:"log_level" env:"COOKBOOK_LOG_LEVEL" env-default:"warn" env-description:"Log level: debug, info, warn or error"`
	MetricsFile string `yaml:"metrics_file" json:"metrics_file" toml:"metrics_file" env:"COOKBOOK_METRICS_FILE" env-description:"Write store metrics to this Prometheus textfile"`
}

// Load reads configuration from path, if given, and then from the
// environment. Missing values take their defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to read config from %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return cfg, nil
}

// Usage describes every environment variable.
func Usage() string {
	var cfg Config
	usage, _ := cleanenv.GetDescription(&cfg, nil)
	return usage
}

// Validate checks the driver and log level.
func (c *Config) Validate() error {
	if !slices.Contains(Drivers, c.Driver) {
		return fmt.Errorf("%w: %q (want one of %s)", storage.ErrUnknownDriver, c.Driver, strings.Join(Drivers, ", "))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Driver != DriverMemory && c.DataDir == "" {
		return errors.New("data_dir cannot be empty")
	}
	return nil
}

// ParseLevel converts a log level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
}
