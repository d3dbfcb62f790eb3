package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Editor.WrapScan {
		t.Error("wrapscan should default on")
	}
	if cfg.Editor.IgnoreCase {
		t.Error("ignorecase should default off")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
	if cfg.Watch.DebounceMS <= 0 {
		t.Errorf("debounce = %d, want positive", cfg.Watch.DebounceMS)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Error("missing file should yield the defaults")
	}
}

func TestLoadOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vimkata.toml")
	data := `
[editor]
ignorecase = true
smartcase = true
shiftwidth = 4

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Editor.IgnoreCase || !cfg.Editor.SmartCase {
		t.Error("case options not applied")
	}
	if cfg.Editor.ShiftWidth != 4 {
		t.Errorf("shiftwidth = %d, want 4", cfg.Editor.ShiftWidth)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	// Keys the file does not set keep their defaults.
	if !cfg.Editor.WrapScan {
		t.Error("wrapscan default lost")
	}
	if cfg.Watch.DebounceMS != Default().Watch.DebounceMS {
		t.Error("watch default lost")
	}
}

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("[editor]\nautoindent = true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Editor.AutoIndent {
		t.Error("autoindent not applied")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader("editor = [unclosed")); err == nil {
		t.Error("malformed TOML should error")
	}
}
