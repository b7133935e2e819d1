package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Quiz.Bank != nil || cfg.Quiz.LimitID != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[quiz]\nbank = \"optics\"\nlimit-id = 12\n\n[log]\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Quiz.Bank == nil || *cfg.Quiz.Bank != "optics" {
		t.Fatalf("unexpected bank: %v", cfg.Quiz.Bank)
	}
	if cfg.Quiz.LimitID == nil || *cfg.Quiz.LimitID != 12 {
		t.Fatalf("unexpected limit-id: %v", cfg.Quiz.LimitID)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[quiz]\nlimit = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "quiz.limit") {
		t.Fatalf("expected key in error, got %q", err.Error())
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "tuiquiz", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultBankDir(); got != filepath.Join("/cfg", "tuiquiz", "banks") {
		t.Fatalf("unexpected bank dir %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "tuiquiz", "tuiquiz.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "tuiquiz", "tuiquiz.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
