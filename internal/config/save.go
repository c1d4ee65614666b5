package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

const fileHeader = `# navdemo configuration file
# Every value is optional; defaults reproduce the stock behaviour.
# Environment variables (NAVDEMO_LATENCY, NAVDEMO_LOG_LEVEL, ...) and
# command-line flags take precedence over this file.
`

// Marshal renders cfg as YAML, without the file header.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes cfg to path, or to the default location when path is empty.
// Performs an atomic write to prevent corruption on crash.
func Save(cfg *Config, path string) (string, error) {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return "", fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	// Create directory with user-only permissions (0700)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return "", err
	}
	data = append([]byte(fileHeader+"\n"), data...)

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to save config file: %w", err)
	}

	return path, nil
}
