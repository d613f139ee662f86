package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/cleichner/rotide/internal/config/loader"
	"github.com/cleichner/rotide/internal/input/mode"
)

// Config is the complete rotide configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Scripts ScriptsConfig `toml:"scripts"`
	Keymap  KeymapConfig  `toml:"keymap"`
}

// EditorConfig holds input-core settings.
type EditorConfig struct {
	// InitialMode is the mode the editor starts in.
	InitialMode string `toml:"initialMode"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"logLevel"`
	// StatusOnUnknown shows "Not an editor command" for unhandled lines.
	StatusOnUnknown bool `toml:"statusOnUnknown"`
	// Metrics enables key and command statistics.
	Metrics bool `toml:"metrics"`
}

// ScriptsConfig holds Lua script settings.
type ScriptsConfig struct {
	// Paths are .lua files or directories of scripts, loaded in order.
	Paths []string `toml:"paths"`
	// Watch reloads scripts when they change on disk.
	Watch bool `toml:"watch"`
	// Runtime loads the scripts embedded in the binary first.
	Runtime bool `toml:"runtime"`
	// Timeout bounds a single script call, as a Go duration.
	Timeout string `toml:"timeout"`
}

// KeymapConfig lists keymap override files.
type KeymapConfig struct {
	// Files are YAML or TOML keymaps applied over the defaults, in order.
	Files []string `toml:"files"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			InitialMode:     mode.Normal.String(),
			LogLevel:        "info",
			StatusOnUnknown: true,
		},
		Scripts: ScriptsConfig{
			Paths:   DefaultScriptPaths(),
			Watch:   true,
			Runtime: true,
			Timeout: "2s",
		},
	}
}

// DefaultConfigPath returns ~/.config/rotide/config.toml (or the platform
// equivalent), or "" when no config directory is known.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rotide", "config.toml")
}

// DefaultScriptPaths returns the user script directory and the project
// script directory.
func DefaultScriptPaths() []string {
	paths := make([]string, 0, 2)
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "rotide", "scripts"))
	}
	paths = append(paths, filepath.Join(".rotide", "scripts"))
	return paths
}

// Load builds a Config from the defaults, the TOML file at path and the
// ROTIDE_* environment, later sources winning. An empty path means
// DefaultConfigPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	return load(path, loader.DefaultFS(), loader.NewEnvLoader(loader.Prefix))
}

func load(path string, fsys loader.FileSystem, env loader.Loader) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	var file map[string]any
	if path != "" {
		var err error
		file, err = loader.NewTOMLLoaderWithFS(fsys, path).Load()
		if err != nil {
			return nil, err
		}
		if file == nil && explicit {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
	}

	overrides, err := env.Load()
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	merged := loader.DeepMerge(file, overrides)
	cfg := Default()
	if err := cfg.apply(path, merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes a merged settings map over cfg.
func (c *Config) apply(source string, settings map[string]any) error {
	if len(settings) == 0 {
		return nil
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return &loader.ParseError{Path: source, Message: err.Error(), Err: err}
	}
	c.Scripts.Paths = expandHome(c.Scripts.Paths)
	c.Keymap.Files = expandHome(c.Keymap.Files)
	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(paths []string) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if p == "~" || strings.HasPrefix(p, "~/") {
			p = filepath.Join(home, p[1:])
		}
		out[i] = p
	}
	return out
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := mode.Parse(c.Editor.InitialMode); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "editor.initialMode",
			Value:   c.Editor.InitialMode,
			Message: "want normal, insert or command-line",
		})
	}
	switch strings.ToLower(c.Editor.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{
			Path:    "editor.logLevel",
			Value:   c.Editor.LogLevel,
			Message: "want debug, info, warn or error",
		})
	}
	if d, err := time.ParseDuration(c.Scripts.Timeout); err != nil || d <= 0 {
		errs = append(errs, &ValidationError{
			Path:    "scripts.timeout",
			Value:   c.Scripts.Timeout,
			Message: "want a positive duration",
		})
	}
	return errors.Join(errs...)
}

// Mode returns the parsed initial mode, Normal if it is invalid.
func (c *Config) Mode() mode.Mode {
	m, err := mode.Parse(c.Editor.InitialMode)
	if err != nil {
		return mode.Normal
	}
	return m
}

// ScriptTimeout returns the parsed script timeout, zero if it is invalid.
func (c *Config) ScriptTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Scripts.Timeout)
	return d
}

// WatchPaths returns the keymap files plus configPath, if set.
func (c *Config) WatchPaths(configPath string) []string {
	paths := append([]string(nil), c.Keymap.Files...)
	if configPath != "" {
		paths = append(paths, configPath)
	}
	return paths
}
