// Package config loads gridsim settings from an optional YAML file with
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/gridsim/pkg/validation"
)

// Config holds gridsim settings
type Config struct {
	// LogLevel is one of debug, info, warn, error (default: info)
	LogLevel string `yaml:"log_level"`

	Simulation SimulationConfig `yaml:"simulation"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Report     ReportConfig     `yaml:"report"`
}

// SimulationConfig configures load-scaling runs
type SimulationConfig struct {
	// DefaultPercent is used when no percentage is given and input is not interactive
	DefaultPercent float64 `yaml:"default_percent"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// ListenAddr serves /metrics when non-empty (e.g. ":9108")
	ListenAddr string `yaml:"listen_addr"`
}

// ReportConfig configures text output
type ReportConfig struct {
	// Unit labels loads and capacities (default: MW)
	Unit string `yaml:"unit"`
}

// Default configuration values
const (
	DefaultLogLevel = "info"
	DefaultPercent  = 10.0
	DefaultUnit     = "MW"
)

// Environment variables overriding file values
const (
	EnvLogLevel       = "LOG_LEVEL"
	EnvDefaultPercent = "GRIDSIM_DEFAULT_PERCENT"
	EnvMetricsAddr    = "GRIDSIM_METRICS_ADDR"
	EnvUnit           = "GRIDSIM_UNIT"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel:   DefaultLogLevel,
		Simulation: SimulationConfig{DefaultPercent: DefaultPercent},
		Report:     ReportConfig{Unit: DefaultUnit},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, in that order, and validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		defer f.Close()

		if err := cfg.decode(f); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. The
// environment is not consulted.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvDefaultPercent); v != "" {
		p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDefaultPercent, v, err)
		}
		c.Simulation.DefaultPercent = p
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		c.Metrics.ListenAddr = v
	}
	if v := os.Getenv(EnvUnit); v != "" {
		c.Report.Unit = v
	}
	return nil
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		OneOf("LogLevel", strings.ToLower(c.LogLevel), logLevels).
		NonNegativeFloat("Simulation.DefaultPercent", c.Simulation.DefaultPercent).
		Required("Report.Unit", c.Report.Unit).
		When(c.Metrics.ListenAddr != "", func(cv *validation.ConfigValidator) {
			cv.Custom("Metrics.ListenAddr", func() error {
				if !strings.Contains(c.Metrics.ListenAddr, ":") {
					return fmt.Errorf("%q is not a host:port address", c.Metrics.ListenAddr)
				}
				return nil
			})
		}).
		Validate()
}
