package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. NAVDEMO_LATENCY or
// NAVDEMO_LOG_LEVEL.
const EnvPrefix = "NAVDEMO"

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"latency":       "latency",
	"log.level":     "log-level",
	"log.file":      "log-file",
	"ui.alt_screen": "alt-screen",
	"ui.show_ids":   "show-ids",
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// Path is an explicit config file. When empty the default location is
	// searched and a missing file is not an error.
	Path string

	// Flags, when set, override file and environment values for the flags
	// the user actually passed.
	Flags *pflag.FlagSet
}

// Load resolves the configuration from defaults, the YAML file, NAVDEMO_*
// environment variables and flags, in increasing order of precedence.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
	} else {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		v.AddConfigPath(dir)
		v.SetConfigName(configName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range flagKeys {
			if flag := opts.Flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.Path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("latency", d.Latency)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
	v.SetDefault("ui.show_ids", d.UI.ShowIDs)
}
