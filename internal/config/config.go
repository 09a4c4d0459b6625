// Package config loads and saves the despesas TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultTopN is used when top_n is unset or not positive.
const DefaultTopN = 10

// Config holds all despesas configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Cache      CacheConfig      `toml:"cache"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	LedgerFile string `toml:"ledger_file"`
	TopN       int    `toml:"top_n"`
}

// CacheConfig controls the SQLite disk mirror.
type CacheConfig struct {
	Persistent bool   `toml:"persistent"`
	Path       string `toml:"path,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LedgerFile: "despesas.xlsx",
			TopN:       DefaultTopN,
		},
		Appearance: AppearanceConfig{
			Theme: "fundex",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "despesas")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "despesas")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "despesas")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "despesas")
}

// CachePath returns the disk cache database location.
func CachePath(cfg Config) string {
	if cfg.Cache.Path != "" {
		return cfg.Cache.Path
	}
	return filepath.Join(CacheDir(), "ledger.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	if cfg.General.TopN <= 0 {
		cfg.General.TopN = DefaultTopN
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) (err error) {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing config file: %w", cerr)
		}
	}()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// GetLedgerFile returns the ledger path from env var or config, in that order.
func GetLedgerFile(cfg Config) string {
	if p := os.Getenv("DESPESAS_FILE"); p != "" {
		return p
	}
	return cfg.General.LedgerFile
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
