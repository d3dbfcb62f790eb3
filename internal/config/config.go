// Package config loads vimkata configuration from TOML files.
//
// Configuration is optional: a missing file yields the defaults, and a
// partial file overrides only the keys it names.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/vimkata/internal/editor"
)

// Config is the full vimkata configuration.
type Config struct {
	// Editor holds the emulated option set (ignorecase, wrapscan, ...).
	Editor editor.Options `toml:"editor"`

	// Log controls diagnostic output.
	Log LogConfig `toml:"log"`

	// Watch controls the file-watching replay loop.
	Watch WatchConfig `toml:"watch"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	// Level is the minimum level to emit: debug, info, warn, or error.
	Level string `toml:"level"`
}

// WatchConfig controls the file-watching replay loop.
type WatchConfig struct {
	// DebounceMS is how long to wait after a write event before
	// re-running, in milliseconds. Editors often write files in bursts.
	DebounceMS int `toml:"debounce_ms"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Editor: editor.DefaultOptions(),
		Log:    LogConfig{Level: "info"},
		Watch:  WatchConfig{DebounceMS: 300},
	}
}

// Load reads configuration from path. A missing file is not an error;
// it returns the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadFromReader reads configuration from r.
func LoadFromReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", data)
}

func parse(source string, data []byte) (Config, error) {
	// Start from the defaults so unset keys keep their values.
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", source, err)
	}
	return cfg, nil
}
