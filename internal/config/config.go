// Package config loads editor settings from a TOML file. A missing
// file is not an error; the defaults apply. A malformed file also
// falls back to defaults so the session can start, with the parse
// error reported to the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full set of editor settings.
type Config struct {
	Editor  EditorConfig      `toml:"editor"`
	Theme   map[string]string `toml:"theme"`
	Syntax  SyntaxConfig      `toml:"syntax"`
	Plugins PluginConfig      `toml:"plugins"`
	Log     LogConfig         `toml:"log"`
}

// EditorConfig holds core editing behavior settings.
type EditorConfig struct {
	// InputTimeoutMS is how long one poll waits for a key before the
	// loop runs its periodic work, in milliseconds.
	InputTimeoutMS int `toml:"input_timeout_ms"`

	// ExplorerWidth is the file panel width in columns. Zero means a
	// third of the window.
	ExplorerWidth int `toml:"explorer_width"`
}

// SyntaxConfig points at user-provided highlighting definitions.
type SyntaxConfig struct {
	// Dir is scanned for YAML language definitions at startup.
	Dir string `toml:"dir"`
}

// PluginConfig controls script loading.
type PluginConfig struct {
	// Dir holds Lua plugin scripts.
	Dir string `toml:"dir"`

	// Enabled lists script names to load, without the .lua suffix.
	// Empty means every script in Dir.
	Enabled []string `toml:"enabled"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	// File receives log lines. Empty disables logging.
	File string `toml:"file"`

	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns the settings used when no file overrides them.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			InputTimeoutMS: 100,
		},
		Theme: map[string]string{},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the conventional config file location,
// typically ~/.config/tern/config.toml.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "tern", "config.toml")
}

// Load reads path and overlays it on the defaults. The returned
// Config is always usable; the error reports a missing-but-requested
// or malformed file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Theme == nil {
		cfg.Theme = map[string]string{}
	}
	return cfg, nil
}
