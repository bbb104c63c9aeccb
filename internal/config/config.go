// Package config reads and writes the optional user settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "esbuildrun.yaml"

// Settings is the user-level configuration. Every field is optional; the
// zero value means "use the built-in defaults".
type Settings struct {
	// RegistryURL replaces the default npm registry endpoint.
	RegistryURL string `yaml:"registry_url,omitempty"`
	// Version pins the esbuild release, e.g. "0.19.11". Empty means latest.
	Version string `yaml:"version,omitempty"`
	// CacheDir replaces the default cache root.
	CacheDir string `yaml:"cache_dir,omitempty"`
}

// Path returns the settings file location inside the user config directory.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "esbuildrun", settingsFileName), nil
}

// Load reads the settings file. A missing file yields zero-value settings.
func Load() (Settings, error) {
	path, err := Path()
	if err != nil {
		return Settings{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Save writes the settings file, creating parent directories as needed.
func Save(s Settings) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare settings dir: %w", err)
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
