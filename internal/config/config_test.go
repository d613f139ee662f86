package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cleichner/rotide/internal/config/loader"
	"github.com/cleichner/rotide/internal/input/mode"
)

type staticEnv map[string]any

func (e staticEnv) Load() (map[string]any, error) {
	return map[string]any(e), nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Mode() != mode.Normal {
		t.Errorf("Mode() = %v, want normal", cfg.Mode())
	}
	if !cfg.Editor.StatusOnUnknown || !cfg.Scripts.Runtime || !cfg.Scripts.Watch {
		t.Errorf("Default() = %+v", cfg)
	}
	if cfg.ScriptTimeout() != 2*time.Second {
		t.Errorf("ScriptTimeout() = %v", cfg.ScriptTimeout())
	}
	if len(cfg.Scripts.Paths) == 0 {
		t.Error("Default() should have script paths")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[editor]
initialMode = "insert"
logLevel = "debug"

[scripts]
paths = ["/opt/rotide/keys.lua"]
timeout = "500ms"

[keymap]
files = ["/etc/rotide/keys.yaml"]
`)

	cfg, err := load(path, loader.DefaultFS(), staticEnv{})
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Mode() != mode.Insert {
		t.Errorf("Mode() = %v, want insert", cfg.Mode())
	}
	if cfg.Editor.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.Editor.LogLevel)
	}
	if !cfg.Editor.StatusOnUnknown {
		t.Error("unset setting should keep its default")
	}
	if len(cfg.Scripts.Paths) != 1 || cfg.Scripts.Paths[0] != "/opt/rotide/keys.lua" {
		t.Errorf("Scripts.Paths = %v", cfg.Scripts.Paths)
	}
	if cfg.ScriptTimeout() != 500*time.Millisecond {
		t.Errorf("ScriptTimeout() = %v", cfg.ScriptTimeout())
	}

	watch := cfg.WatchPaths(path)
	if len(watch) != 2 || watch[0] != "/etc/rotide/keys.yaml" || watch[1] != path {
		t.Errorf("WatchPaths() = %v", watch)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "[editor]\nlogLevel = \"warn\"\n")
	env := staticEnv{
		"editor":  map[string]any{"logLevel": "error"},
		"scripts": map[string]any{"paths": []any{"/env/scripts"}},
	}

	cfg, err := load(path, loader.DefaultFS(), env)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Editor.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error", cfg.Editor.LogLevel)
	}
	if len(cfg.Scripts.Paths) != 1 || cfg.Scripts.Paths[0] != "/env/scripts" {
		t.Errorf("Scripts.Paths = %v", cfg.Scripts.Paths)
	}
}

func TestLoadWithRealEnvironment(t *testing.T) {
	t.Setenv("ROTIDE_LOG_LEVEL", "debug")
	t.Setenv("ROTIDE_SCRIPTS", "/x.lua")
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.Editor.LogLevel)
	}
	if len(cfg.Scripts.Paths) != 1 || cfg.Scripts.Paths[0] != "/x.lua" {
		t.Errorf("Scripts.Paths = %v", cfg.Scripts.Paths)
	}
}

func TestLoadExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := writeConfig(t, "[scripts]\npaths = [\"~/scripts\"]\n")

	cfg, err := load(path, loader.DefaultFS(), staticEnv{})
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if want := filepath.Join(home, "scripts"); cfg.Scripts.Paths[0] != want {
		t.Errorf("Scripts.Paths[0] = %q, want %q", cfg.Scripts.Paths[0], want)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	_, err := load(missing, loader.DefaultFS(), staticEnv{})
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("load() error = %v, want ErrFileNotFound", err)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[editor\n")
	_, err := load(path, loader.DefaultFS(), staticEnv{})
	var pe *loader.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("load() error = %v, want *loader.ParseError", err)
	}
	if pe.Path != path {
		t.Errorf("Path = %q, want %q", pe.Path, path)
	}
}

func TestLoadTypeMismatch(t *testing.T) {
	path := writeConfig(t, "[editor]\nstatusOnUnknown = \"sometimes\"\n")
	_, err := load(path, loader.DefaultFS(), staticEnv{})
	var pe *loader.ParseError
	if !errors.As(err, &pe) || pe.Path != path {
		t.Errorf("load() error = %v, want ParseError for %s", err, path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"mode", func(c *Config) { c.Editor.InitialMode = "visual" }, "editor.initialMode"},
		{"log level", func(c *Config) { c.Editor.LogLevel = "loud" }, "editor.logLevel"},
		{"timeout", func(c *Config) { c.Scripts.Timeout = "-1s" }, "scripts.timeout"},
		{"timeout syntax", func(c *Config) { c.Scripts.Timeout = "soon" }, "scripts.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate() = %v, want ErrValidationFailed", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Path != tt.path {
				t.Errorf("Validate() = %v, want path %s", err, tt.path)
			}
		})
	}
}

func TestModeFallback(t *testing.T) {
	cfg := Default()
	cfg.Editor.InitialMode = "bogus"
	if cfg.Mode() != mode.Normal {
		t.Errorf("Mode() = %v, want normal", cfg.Mode())
	}
	cfg.Editor.InitialMode = "command-line"
	if cfg.Mode() != mode.CommandLine {
		t.Errorf("Mode() = %v, want command-line", cfg.Mode())
	}
}
