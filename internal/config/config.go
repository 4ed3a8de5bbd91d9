// Package config holds the settings of the serpent tools.
//
// Settings come from defaults, then an optional JSON file, then SERPENT_*
// environment variables, then command line flags applied by the tools.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/serpent-lang/serpent/internal/cli"
	"github.com/serpent-lang/serpent/internal/optimize"
	"github.com/serpent-lang/serpent/internal/shape"
	"github.com/serpent-lang/serpent/internal/trace"
)

// Config is the tool configuration.
type Config struct {
	LogLevel        string `json:"log_level"`
	LogFormat       string `json:"log_format"`
	MaxPasses       int    `json:"max_passes"`
	Workers         int    `json:"workers"`
	MaxConstantSize int    `json:"max_constant_size"`
	Target          string `json:"target"`
	HistoryFile     string `json:"history_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:        "warn",
		LogFormat:       "text",
		MaxPasses:       optimize.DefaultMaxPasses,
		Workers:         4,
		MaxConstantSize: trace.DefaultMaxConstantSize,
		Target:          "python3",
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overlays the SERPENT_* variables that are set.
func (c *Config) ApplyEnv() {
	c.LogLevel = env.Str("SERPENT_LOG_LEVEL", c.LogLevel)
	c.LogFormat = env.Str("SERPENT_LOG_FORMAT", c.LogFormat)
	c.MaxPasses = env.Int("SERPENT_MAX_PASSES", c.MaxPasses)
	c.Workers = env.Int("SERPENT_WORKERS", c.Workers)
	c.MaxConstantSize = env.Int("SERPENT_MAX_CONSTANT_SIZE", c.MaxConstantSize)
	c.Target = env.Str("SERPENT_TARGET", c.Target)
	c.HistoryFile = env.Str("SERPENT_HISTORY", c.HistoryFile)
	if env.Has("SERPENT_DEBUG") && env.Bool("SERPENT_DEBUG") {
		c.LogLevel = "debug"
	}
}

// Validate rejects settings the tools cannot run with.
func (c *Config) Validate() error {
	if _, err := cli.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.MaxPasses < 1 {
		return fmt.Errorf("max_passes must be positive, got %d", c.MaxPasses)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.MaxConstantSize < 1 {
		return fmt.Errorf("max_constant_size must be positive, got %d", c.MaxConstantSize)
	}
	if _, err := shape.ParseRuntime(c.Target); err != nil {
		return err
	}
	return nil
}

// Runtime is the parsed Target.
func (c *Config) Runtime() shape.Runtime {
	r, _ := shape.ParseRuntime(c.Target)
	return r
}

// Pipeline builds the optimizer the configuration describes.
func (c *Config) Pipeline() *optimize.Pipeline {
	return optimize.New(c.MaxPasses, c.MaxConstantSize)
}

// LogConfig is the logging part of the configuration.
func (c *Config) LogConfig() cli.LogConfig {
	lc := cli.DefaultLogConfig()
	lc.Level = c.LogLevel
	lc.Format = strings.ToLower(c.LogFormat)
	return lc
}
