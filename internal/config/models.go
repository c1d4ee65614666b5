package config

import (
	"fmt"
	"time"
)

// CurrentVersion is the only config file version understood.
const CurrentVersion = 1

// Config holds the user-tunable settings. Every field has a default that
// reproduces the stock behaviour, so running without a file is the norm.
type Config struct {
	Version int           `mapstructure:"version"`
	Latency time.Duration `mapstructure:"latency"` // Simulated round-trip per operation
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
}

// LogConfig selects logging level and destination.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // Empty means silent
	File  string `mapstructure:"file" yaml:"file,omitempty"`
}

// UIConfig controls the interactive browser.
type UIConfig struct {
	AltScreen bool `mapstructure:"alt_screen" yaml:"alt_screen"` // Run full-screen
	ShowIDs   bool `mapstructure:"show_ids" yaml:"show_ids"`     // Show short entity ids in lists
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Latency: 2 * time.Second,
		UI: UIConfig{
			AltScreen: true,
		},
	}
}

// Validate checks values that cannot be expressed in the type system.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	if c.Latency < 0 {
		return fmt.Errorf("latency must not be negative, got %s", c.Latency)
	}
	return nil
}

// fileConfig is the on-disk shape; durations are written as strings
// such as "2s" so the file stays readable.
type fileConfig struct {
	Version int       `yaml:"version"`
	Latency string    `yaml:"latency"`
	Log     LogConfig `yaml:"log"`
	UI      UIConfig  `yaml:"ui"`
}

// MarshalYAML implements yaml.Marshaler
func (c Config) MarshalYAML() (interface{}, error) {
	return fileConfig{
		Version: c.Version,
		Latency: c.Latency.String(),
		Log:     c.Log,
		UI:      c.UI,
	}, nil
}
