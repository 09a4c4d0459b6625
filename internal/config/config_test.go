package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Error("Exists() = true with no file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.LedgerFile = "/data/despesas-2024.xlsx"
	cfg.General.TopN = 5
	cfg.Cache.Persistent = true
	cfg.Appearance.Theme = "flexoki-dark"
	cfg.Log.Level = "debug"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	info, err := os.Stat(Path())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	content := "[general]\nledger_file = \"outro.csv\"\ntop_n = 0\n"
	if err := os.MkdirAll(filepath.Join(dir, "despesas"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.LedgerFile != "outro.csv" {
		t.Errorf("LedgerFile = %q", cfg.General.LedgerFile)
	}
	if cfg.General.TopN != DefaultTopN {
		t.Errorf("TopN = %d, want default %d", cfg.General.TopN, DefaultTopN)
	}
	if cfg.Appearance.Theme != "fundex" || cfg.Log.Level != "warn" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "despesas"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(), []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults on error", cfg)
	}
}

func TestGetLedgerFile(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("DESPESAS_FILE", "")
	if got := GetLedgerFile(cfg); got != "despesas.xlsx" {
		t.Errorf("GetLedgerFile = %q, want config value", got)
	}

	t.Setenv("DESPESAS_FILE", "/env/ledger.csv")
	if got := GetLedgerFile(cfg); got != "/env/ledger.csv" {
		t.Errorf("GetLedgerFile = %q, want env override", got)
	}
}

func TestCachePath(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	cfg := DefaultConfig()
	if got, want := CachePath(cfg), filepath.Join(cacheHome, "despesas", "ledger.db"); got != want {
		t.Errorf("CachePath = %q, want %q", got, want)
	}

	cfg.Cache.Path = "/tmp/custom.db"
	if got := CachePath(cfg); got != "/tmp/custom.db" {
		t.Errorf("CachePath = %q, want explicit path", got)
	}
}
