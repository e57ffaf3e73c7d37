// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"spectro/internal/log"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig is Load followed by Validate.
func LoadConfig(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load builds a Config from defaults, then the YAML file at path (or
// DefaultConfigFile in the working directory when path is empty and the
// file exists), then ENV_* overrides. The result is not validated, so
// callers that layer further overrides on top must call Validate last.
//
// ENV_* values come from DefaultEnvFile if present, with the process
// environment taking precedence. The process environment is never modified.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.ConfigPath = path
	}

	env, err := readEnvFile(DefaultEnvFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(envLookup(env)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the framing and canvas geometry.
func (c *Config) Validate() error {
	if c.Analysis.WindowSize <= 0 {
		return fmt.Errorf("%w: analysis.window_size must be positive, got %d",
			ErrInvalidConfig, c.Analysis.WindowSize)
	}
	if c.Analysis.HopSize <= 0 || c.Analysis.HopSize > c.Analysis.WindowSize {
		return fmt.Errorf("%w: analysis.hop_size must be in 1..%d, got %d",
			ErrInvalidConfig, c.Analysis.WindowSize, c.Analysis.HopSize)
	}

	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: render canvas must be positive, got %dx%d",
			ErrInvalidConfig, r.Width, r.Height)
	}
	if r.Margin < 0 || r.XLabelArea < 0 || r.YLabelArea < 0 || r.PointRadius < 0 {
		return fmt.Errorf("%w: render margin, label areas and point radius must not be negative",
			ErrInvalidConfig)
	}
	if r.Width-2*r.Margin-r.YLabelArea <= 0 || r.Height-2*r.Margin-r.XLabelArea <= 0 {
		return fmt.Errorf("%w: no plot area left inside %dx%d after margins and label areas",
			ErrInvalidConfig, r.Width, r.Height)
	}
	if r.FontSize <= 0 {
		return fmt.Errorf("%w: render.font_size must be positive, got %g", ErrInvalidConfig, r.FontSize)
	}
	switch r.AxisUnits {
	case AxisUnitsRaw, AxisUnitsPhysical:
	default:
		return fmt.Errorf("%w: render.axis_units must be %q or %q, got %q",
			ErrInvalidConfig, AxisUnitsRaw, AxisUnitsPhysical, r.AxisUnits)
	}

	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return env, nil
}

// envLookup prefers the process environment over values from the env file.
func envLookup(file map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if val, ok := os.LookupEnv(key); ok {
			return val, true
		}
		val, ok := file[key]
		return val, ok
	}
}

// applyEnvOverrides applies ENV_* variables. Malformed numbers and booleans
// are reported rather than silently ignored.
func (c *Config) applyEnvOverrides(lookup func(string) (string, bool)) error {
	// ENV_DEBUG
	if val, ok := lookup("ENV_DEBUG"); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%w: ENV_DEBUG: %v", ErrInvalidConfig, err)
		}
		c.Debug = b
		if b {
			c.LogLevel = "debug"
		}
	}
	// ENV_LOG_LEVEL
	if val, ok := lookup("ENV_LOG_LEVEL"); ok {
		c.LogLevel = val
	}

	// ENV_INPUT_PATH / ENV_OUTPUT_PATH
	if val, ok := lookup("ENV_INPUT_PATH"); ok {
		c.Input.Path = val
	}
	if val, ok := lookup("ENV_OUTPUT_PATH"); ok {
		c.Render.OutputPath = val
	}

	// ENV_WINDOW_SIZE / ENV_HOP_SIZE
	for key, dst := range map[string]*int{
		"ENV_WINDOW_SIZE": &c.Analysis.WindowSize,
		"ENV_HOP_SIZE":    &c.Analysis.HopSize,
	} {
		if val, ok := lookup(key); ok {
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
			}
			*dst = n
		}
	}

	// ENV_AXIS_UNITS
	if val, ok := lookup("ENV_AXIS_UNITS"); ok {
		c.Render.AxisUnits = val
	}

	return nil
}
