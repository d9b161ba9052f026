// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/okian/swimtab/internal/adapters/lenex"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// InputDir is scanned for meet-result files.
	InputDir string `koanf:"input_dir"`

	// Patterns are glob patterns matched inside InputDir.
	Patterns []string `koanf:"patterns"`

	// OutputDir receives the CSV tables.
	OutputDir string `koanf:"output_dir"`

	// ParseWorkers bounds how many files are parsed concurrently.
	ParseWorkers int `koanf:"parse_workers"`

	// SQLitePath, when set, also writes the tables to a SQLite database.
	SQLitePath string `koanf:"sqlite_path"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		InputDir:     "datos",
		Patterns:     slices.Clone(lenex.DefaultPatterns),
		OutputDir:    ".",
		ParseWorkers: runtime.NumCPU(),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate(_ context.Context) error {
	switch {
	case strings.TrimSpace(c.InputDir) == "":
		return fmt.Errorf("%w: input_dir must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.OutputDir) == "":
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	case len(c.Patterns) == 0:
		return fmt.Errorf("%w: patterns must not be empty", ErrInvalidConfig)
	case c.ParseWorkers <= 0:
		return fmt.Errorf("%w: parse_workers must be positive, got %d", ErrInvalidConfig, c.ParseWorkers)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
