package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, path, src string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewLoaderWithPaths(t *testing.T) {
	loader := NewLoader(WithPaths("/custom/path1", "/custom/path2"))

	paths := loader.Paths()
	if len(paths) != 2 {
		t.Fatalf("Paths() len = %d, want 2", len(paths))
	}
	if paths[0] != "/custom/path1" {
		t.Errorf("Paths()[0] = %q, want %q", paths[0], "/custom/path1")
	}

	loader.AddPath("/added")
	if got := loader.Paths(); len(got) != 3 || got[2] != "/added" {
		t.Errorf("Paths() after AddPath = %v", got)
	}
}

func TestLoaderDiscoverEmpty(t *testing.T) {
	loader := NewLoader(WithPaths(t.TempDir()))

	scripts, err := loader.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(scripts) != 0 {
		t.Errorf("Discover() found %d scripts in empty dir", len(scripts))
	}
}

func TestLoaderDiscoverMissingDirectory(t *testing.T) {
	loader := NewLoader(WithPaths(filepath.Join(t.TempDir(), "nope")))

	scripts, err := loader.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(scripts) != 0 {
		t.Errorf("Discover() = %d scripts, want 0", len(scripts))
	}
}

func TestLoaderDiscoverDirectory(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "b.lua"), "-- b")
	writeScript(t, filepath.Join(dir, "a.lua"), "-- a")
	writeScript(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeScript(t, filepath.Join(dir, "motions", "init.lua"), "-- motions")
	if err := os.MkdirAll(filepath.Join(dir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(WithPaths(dir))
	scripts, err := loader.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{"a", "b", "empty", "motions"}
	if len(scripts) != len(want) {
		t.Fatalf("Discover() = %d scripts, want %d", len(scripts), len(want))
	}
	for i, name := range want {
		if scripts[i].Name != name {
			t.Errorf("scripts[%d].Name = %q, want %q", i, scripts[i].Name, name)
		}
	}
	if got := scripts[3].Path; got != filepath.Join(dir, "motions", "init.lua") {
		t.Errorf("motions path = %q", got)
	}
	if !errors.Is(scripts[2].Error, ErrNoEntryPoint) {
		t.Errorf("empty dir error = %v, want ErrNoEntryPoint", scripts[2].Error)
	}
	if scripts[2].State != StateError {
		t.Errorf("empty dir state = %v, want error", scripts[2].State)
	}
	if errs := loader.Errors(); len(errs) != 1 || errs[0].Name != "empty" {
		t.Errorf("Errors() = %v", errs)
	}
}

func TestLoaderDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "keys.lua")
	writeScript(t, script, "-- keys")
	text := filepath.Join(dir, "keys.txt")
	writeScript(t, text, "not lua")
	missing := filepath.Join(dir, "missing.lua")

	loader := NewLoader(WithPaths(script, text, missing))
	scripts, err := loader.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(scripts) != 3 {
		t.Fatalf("Discover() = %d scripts, want 3", len(scripts))
	}

	tests := []struct {
		name    string
		wantErr error
	}{
		{"keys", nil},
		{"keys.txt", ErrNotLua},
		{"missing", ErrScriptNotFound},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := scripts[i]
			if info.Name != tt.name {
				t.Errorf("Name = %q, want %q", info.Name, tt.name)
			}
			if tt.wantErr == nil {
				if info.Error != nil || info.State != StateUnloaded {
					t.Errorf("info = %+v, want unloaded without error", info)
				}
				return
			}
			if !errors.Is(info.Error, tt.wantErr) {
				t.Errorf("Error = %v, want %v", info.Error, tt.wantErr)
			}
		})
	}
}

func TestLoaderFirstPathWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeScript(t, filepath.Join(first, "keys.lua"), "-- first")
	writeScript(t, filepath.Join(second, "keys.lua"), "-- second")
	writeScript(t, filepath.Join(second, "extra.lua"), "-- extra")

	loader := NewLoader(WithPaths(first, second))
	scripts, err := loader.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(scripts) != 2 {
		t.Fatalf("Discover() = %d scripts, want 2", len(scripts))
	}

	info, ok := loader.Get("keys")
	if !ok {
		t.Fatal("Get(keys) not found")
	}
	if info.Path != filepath.Join(first, "keys.lua") {
		t.Errorf("keys path = %q, want first path", info.Path)
	}
	if loader.Count() != 2 {
		t.Errorf("Count() = %d, want 2", loader.Count())
	}
	if names := loader.ListNames(); names[0] != "extra" || names[1] != "keys" {
		t.Errorf("ListNames() = %v", names)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUnloaded, "unloaded"},
		{StateLoaded, "loaded"},
		{StateError, "error"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
