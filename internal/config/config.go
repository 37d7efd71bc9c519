// Package config loads the whirl CLI configuration and job files.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultIntervalMS = 80
	DefaultMessage    = "Running: "
)

// DefaultConfigFile is looked up in the working directory when no explicit
// config path is given.
const DefaultConfigFile = ".whirl.yaml"

// Config controls spinner rendering and job execution.
type Config struct {
	// IntervalMS is the animation frame delay in milliseconds.
	IntervalMS int `yaml:"interval_ms"`
	// MaxWorkers bounds concurrent jobs; 0 means unbounded.
	MaxWorkers int `yaml:"max_workers"`
	// Message prefixes every spinner line.
	Message string `yaml:"message"`
	// NoColor disables ANSI color styling.
	NoColor bool `yaml:"no_color"`
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		IntervalMS: DefaultIntervalMS,
		Message:    DefaultMessage,
	}
}

// Load reads and parses the config file at path. Missing fields fall back
// to defaults; a missing file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.IntervalMS == 0 {
		cfg.IntervalMS = DefaultIntervalMS
	}
	if cfg.Message == "" {
		cfg.Message = DefaultMessage
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault loads DefaultConfigFile from the working directory, or
// returns defaults when the file doesn't exist.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultConfigFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			def := DefaultConfig()
			return &def, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges, returning a field-specific error.
func (c *Config) Validate() error {
	if c.IntervalMS < 0 {
		return ValidationError{Field: "interval_ms", Message: "must not be negative"}
	}
	if c.MaxWorkers < 0 {
		return ValidationError{Field: "max_workers", Message: "must not be negative"}
	}
	return nil
}
