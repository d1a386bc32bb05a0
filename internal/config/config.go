// Package config handles geomtool configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all tool settings.
type Config struct {
	Query   QueryConfig   `yaml:"query"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// QueryConfig controls batch ray casting.
type QueryConfig struct {
	Workers int           `yaml:"workers"` // Concurrent ray casts; 0 means one per CPU
	Timeout time.Duration `yaml:"timeout"` // Deadline for a whole batch; 0 disables it
}

// SceneConfig holds scene defaults.
type SceneConfig struct {
	Path string `yaml:"path"` // Scene used when none is given on the command line

	// Used by pick when the scene has no viewport
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Query: QueryConfig{
			Workers: 0,
			Timeout: 30 * time.Second,
		},
		Scene: SceneConfig{
			Path:           "",
			ViewportWidth:  800,
			ViewportHeight: 600,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validation errors
var (
	ErrNegativeWorkers = errors.New("query.workers must not be negative")
	ErrNegativeTimeout = errors.New("query.timeout must not be negative")
	ErrInvalidViewport = errors.New("scene viewport must be positive")
	ErrInvalidLogLevel = errors.New("unknown logging.level")
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks the values a file or flags may have broken.
func (c *Config) Validate() error {
	if c.Query.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeWorkers, c.Query.Workers)
	}
	if c.Query.Timeout < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeTimeout, c.Query.Timeout)
	}
	if c.Scene.ViewportWidth <= 0 || c.Scene.ViewportHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, c.Scene.ViewportWidth, c.Scene.ViewportHeight)
	}
	if !logLevels[c.Logging.Level] {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	return nil
}
