// Package config loads shindan settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/shindan/internal/store"
)

// Default storage ceiling and store quota, matching a browser's 5 MiB local
// storage budget.
const (
	DefaultStorageLimit int64 = 5 * 1024 * 1024
	DefaultQuota        int64 = 5 * 1024 * 1024
)

// Config holds all runtime settings.
type Config struct {
	// DBPath is the SQLite file holding the record.
	DBPath string `yaml:"db_path"`

	// StorageLimitBytes is the footprint at which old history is evicted.
	StorageLimitBytes int64 `yaml:"storage_limit_bytes"`

	// QuotaBytes is the hard store quota. Zero disables it.
	QuotaBytes int64 `yaml:"quota_bytes"`

	Logging LoggingConfig `yaml:"logging"`

	// CatalogFile optionally replaces the built-in reward catalog.
	CatalogFile string `yaml:"catalog_file"`
}

// LoggingConfig configures the file logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	dir, err := store.DataDir()
	if err != nil {
		dir = "."
	}
	return &Config{
		DBPath:            filepath.Join(dir, "shindan.db"),
		StorageLimitBytes: DefaultStorageLimit,
		QuotaBytes:        DefaultQuota,
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(dir, "shindan.log"),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/shindan/config.yaml, falling back to
// ~/.config/shindan/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "shindan", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "shindan", "config.yaml")
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from SHINDAN_* variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("SHINDAN_DB"); v != "" {
		c.DBPath = v
	}
	if v := getenv("SHINDAN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getenv("SHINDAN_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := getenv("SHINDAN_STORAGE_LIMIT"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SHINDAN_STORAGE_LIMIT: %w", err)
		}
		c.StorageLimitBytes = n
	}
	if v := getenv("SHINDAN_CATALOG"); v != "" {
		c.CatalogFile = v
	}
	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.StorageLimitBytes <= 0 {
		return fmt.Errorf("storage_limit_bytes must be positive, got %d", c.StorageLimitBytes)
	}
	if c.QuotaBytes < 0 {
		return fmt.Errorf("quota_bytes must not be negative, got %d", c.QuotaBytes)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
