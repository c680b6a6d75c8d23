// Package config handles the ttrackr TOML configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the default config file name, placed in the home directory.
const FileName = ".ttrackrrc"

// DatabaseFileName is the default database file name, placed in the home directory.
const DatabaseFileName = ".ttrackr.db"

// Config represents the configuration file.
type Config struct {
	// AutoDone marks a task done when a stop brings its spent time up to
	// its allocated time.
	AutoDone bool     `toml:"autodone"`
	Database Database `toml:"database"`
}

// Database contains database-related configuration.
type Database struct {
	Path string `toml:"path"`
}

// DefaultPath returns ~/.ttrackrrc.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, FileName), nil
}

// Default returns the configuration written on first run.
func Default() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}
	return &Config{
		Database: Database{Path: filepath.Join(homeDir, DatabaseFileName)},
	}, nil
}

// LoadOrCreate reads the config file at path, writing the defaults there
// first if it does not exist. An empty path means DefaultPath. createdAt
// is the path of the file written, or empty when an existing file was
// read.
func LoadOrCreate(path string) (cfg *Config, createdAt string, err error) {
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return nil, "", err
		}
	}

	cfg, err = Load(path)
	if err == nil {
		return cfg, "", nil
	}
	if !os.IsNotExist(err) {
		return nil, "", err
	}

	cfg, err = Default()
	if err != nil {
		return nil, "", err
	}
	if err := Save(path, cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Load reads and parses the config file at path. Missing keys keep their
// defaults. A missing file is reported with an error satisfying
// os.IsNotExist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.Database.Path = expandHome(strings.TrimSpace(cfg.Database.Path))

	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
