// Package config loads program configuration (YAML) and prepares the
// program logger.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// ViewportConfig sets the containing block the document root lays out
// against.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Config is the full program configuration.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{Width: 800, Height: 600},
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none", Mode: "overwrite"},
		},
	}
}

// LoadConfiguration reads configuration from a YAML file, applying defaults
// for anything not set. An empty path returns the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration file '%s': %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("bad configuration in '%s': %w", path, err)
	}
	return cfg, nil
}

// Dump serializes the active configuration back to YAML.
func Dump(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func (cfg *Config) validate() error {
	if cfg.Viewport.Width <= 0 {
		return fmt.Errorf("viewport width must be positive, got %g", cfg.Viewport.Width)
	}
	if cfg.Viewport.Height < 0 {
		return fmt.Errorf("viewport height cannot be negative, got %g", cfg.Viewport.Height)
	}
	for _, l := range []LoggerConfig{cfg.Logging.ConsoleLogger, cfg.Logging.FileLogger} {
		switch l.Level {
		case "", "none", "normal", "debug":
		default:
			return fmt.Errorf("unknown log level %q", l.Level)
		}
		switch l.Mode {
		case "", "append", "overwrite":
		default:
			return fmt.Errorf("unknown log file mode %q", l.Mode)
		}
	}
	if cfg.Logging.FileLogger.Level != "" && cfg.Logging.FileLogger.Level != "none" && cfg.Logging.FileLogger.Destination == "" {
		return fmt.Errorf("file logging requested without a destination")
	}
	return nil
}
