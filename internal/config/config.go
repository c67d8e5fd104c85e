// Package config loads pathpick defaults from ~/.pathpick/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bagtoad/pathpick/internal/logger"
)

// Config holds the values that can be set in the config file. Command-line
// flags take precedence over every field.
type Config struct {
	// Directory is used when no directory argument is given.
	Directory string `yaml:"directory"`
	// Extensions is the default "|"-separated extension filter.
	Extensions string `yaml:"extensions"`
	LogLevel   string `yaml:"log_level"`
	// Listen is the address for `pathpick serve`.
	Listen string `yaml:"listen"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Directory:  ".",
		Extensions: "",
		LogLevel:   "info",
		Listen:     "127.0.0.1:8188",
	}
}

// DefaultPath returns the path to the user's config file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".pathpick", "config.yaml"), nil
}

// Load reads the config file at path. An empty path means DefaultPath.
// A missing file yields the defaults; a malformed one is an error.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Resolve returns the first non-empty value.
// Priority: CLI flag > config file > built-in default.
func Resolve(flag, file, def string) string {
	if flag != "" {
		return flag
	}
	if file != "" {
		return file
	}
	return def
}
