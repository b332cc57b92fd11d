package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.History.MaxLen != 100 {
		t.Errorf("expected default history maxLen 100, got %d", cfg.History.MaxLen)
	}
	if cfg.History.Persist {
		t.Error("persistence should default off")
	}
	if !cfg.Editor.AllowPrefixCompletion {
		t.Error("prefix completion should default on")
	}
	if cfg.Editor.MaskMode {
		t.Error("mask mode should default off")
	}
}

func TestLoadFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[history]
maxLen = 25
persist = true

[editor]
maskMode = true
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	user, md, err := loadFromTOML(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := merge(Default(), user, md)

	if cfg.History.MaxLen != 25 {
		t.Errorf("expected maxLen 25, got %d", cfg.History.MaxLen)
	}
	if !cfg.History.Persist {
		t.Error("expected persistence enabled")
	}
	if !cfg.Editor.MaskMode {
		t.Error("expected mask mode enabled")
	}
	// Unset values keep their defaults.
	if !cfg.Editor.AllowPrefixCompletion {
		t.Error("expected prefix completion default retained")
	}
}

// Explicitly written zero values override their defaults; only keys the
// file never mentions fall back.
func TestMergeExplicitZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[history]
maxLen = 0

[editor]
allowPrefixCompletion = false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	user, md, err := loadFromTOML(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := merge(Default(), user, md)

	if cfg.History.MaxLen != 0 {
		t.Errorf("expected explicit maxLen 0 honoured, got %d", cfg.History.MaxLen)
	}
	if cfg.Editor.AllowPrefixCompletion {
		t.Error("expected prefix completion switched off")
	}
	if cfg.History.Persist {
		t.Error("unmentioned persist should keep its default")
	}
	if cfg.Editor.MaskMode {
		t.Error("unmentioned maskMode should keep its default")
	}
}

func TestLoadFromTOMLBad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[history\nmaxLen"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := loadFromTOML(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestDefaultTOMLParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(DefaultTOML()), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := loadFromTOML(path)
	if err != nil {
		t.Fatalf("generated default config should parse: %v", err)
	}
	if cfg.History.MaxLen != 100 {
		t.Errorf("expected maxLen 100 from generated config, got %d", cfg.History.MaxLen)
	}
}
