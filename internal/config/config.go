// Package config loads the optional user configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Keys holds the `[keys]` table.
type Keys struct {
	// EscNavigatesBack makes Escape behave like "exit node" in the
	// entries pane when true.
	EscNavigatesBack bool `toml:"esc_navigates_back"`
}

// Config is the full recognized shape of dua-cli/config.toml.
type Config struct {
	Keys Keys `toml:"keys"`
}

// Default returns the configuration applied when no file is present.
func Default() Config {
	return Config{}
}

// Path returns the OS-conventional location of the config file. It
// does not check for existence.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dua-cli", "config.toml"), nil
}

// Load reads and parses the config file at its conventional location.
// A missing file is not an error: Load returns Default() in that
// case. A malformed file is a ConfigParseError, surfaced to the
// caller.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom parses the config file at path explicitly, for tests and
// for callers that already resolved a path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}
