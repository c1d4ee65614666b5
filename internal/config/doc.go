// Package config provides user configuration for navdemo.
//
// The configuration is optional. Without a file the application behaves
// with its stock defaults: two seconds of simulated latency per operation and
// silent logging. A YAML file, NAVDEMO_* environment variables and command
// flags can tune the latency, logging and the interactive browser.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/navdemo/config.yaml or $HOME/.config/navdemo/config.yaml
//   - macOS: $HOME/.config/navdemo/config.yaml
//   - Windows: %LOCALAPPDATA%\navdemo\config.yaml
//
// # File Format
//
//	version: 1
//	latency: 2s
//	log:
//	  level: debug
//	  file: /tmp/navdemo.log
//	ui:
//	  alt_screen: true
//	  show_ids: false
//
// # Precedence
//
// Load layers sources with viper: defaults, then the file, then environment
// variables (NAVDEMO_LATENCY, NAVDEMO_LOG_LEVEL, NAVDEMO_UI_SHOW_IDS, ...),
// then flags the user passed explicitly.
//
// # Writing
//
// Save writes the file atomically (temporary file + rename) with user-only
// permissions. Records fetched by the client are never written anywhere.
package config
