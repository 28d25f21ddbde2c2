// Package config loads the CLI's own persistent settings — how adac
// behaves, not anything about the Ada program being compiled — from a
// TOML file, grounded field-for-field on the emulator's config.Config
// shape: nested structs with toml tags, a DefaultConfig constructor, and
// Load/Save pairs resolving one fixed path, ~/.config/adac, on every
// platform.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is adac's own configuration: target defaults for code
// generation, which optimizer passes run unless overridden on the
// command line, and where the bundled runtime is written by default.
type Config struct {
	Codegen struct {
		IntWidth         int  `toml:"int_width"`
		ColorDiagnostics bool `toml:"color_diagnostics"`
	} `toml:"codegen"`

	Optimizer struct {
		ConstantFold       bool `toml:"constant_fold"`
		AttributeReduction bool `toml:"attribute_reduction"`
		RedundantCheckElim bool `toml:"redundant_check_elim"`
	} `toml:"optimizer"`

	Runtime struct {
		EmitPath string `toml:"emit_path"`
	} `toml:"runtime"`
}

// DefaultConfig returns adac's built-in defaults: 64-bit integers,
// colored diagnostics, every optimizer pass enabled, and a runtime
// source written alongside the current directory unless told
// otherwise.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Codegen.IntWidth = 64
	cfg.Codegen.ColorDiagnostics = true
	cfg.Optimizer.ConstantFold = true
	cfg.Optimizer.AttributeReduction = true
	cfg.Optimizer.RedundantCheckElim = true
	cfg.Runtime.EmitPath = "ada_runtime.c"
	return cfg
}

// Path returns the config file path, ~/.config/adac/config.toml on
// every platform, creating the containing directory if it
// does not already exist. A home directory lookup failure falls back
// to a config.toml in the current directory, so a constrained
// environment (no $HOME) never blocks `adac config` or `adac build`
// from running with defaults.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	dir := filepath.Join(home, ".config", "adac")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// Load loads configuration from the default config file path.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads configuration from path, falling back to
// DefaultConfig() unchanged when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save saves configuration to the default config file path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo saves configuration to path in TOML form.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- user-specified config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
