// Package daemon loads configuration and assembles the running service.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the daemon configuration, read from TOML.
type Config struct {
	API      APIConfig      `toml:"api"`
	Storage  StorageConfig  `toml:"storage"`
	Admin    AdminConfig    `toml:"admin"`
	Treasury TreasuryConfig `toml:"treasury"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type StorageConfig struct {
	// Path is the SQLite database file. Empty means in-memory state that
	// does not survive a restart.
	Path string `toml:"path"`
}

type AdminConfig struct {
	// Key is the administrator credential expected in X-Admin-Key.
	// Administrative endpoints reject every request while it is empty.
	Key string `toml:"key"`
}

type TreasuryConfig struct {
	// Currency is the ISO code used when rendering amounts.
	Currency string `toml:"currency"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		API:      APIConfig{Host: "127.0.0.1", Port: 7345},
		Storage:  StorageConfig{Path: defaultDBPath()},
		Treasury: TreasuryConfig{Currency: "USD"},
		Metrics:  MetricsConfig{Enabled: true},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".fleetshare", "config.toml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fleetshare.db"
	}
	return filepath.Join(home, ".fleetshare", "fleetshare.db")
}

// Load reads the config at path, falling back to defaults when the file
// does not exist. Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ListenAddr returns the host:port the API binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}
