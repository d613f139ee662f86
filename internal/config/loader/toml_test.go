package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[editor]
initialMode = "insert"
statusOnUnknown = false

[scripts]
paths = ["a.lua", "b"]
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	editor, ok := config["editor"].(map[string]any)
	if !ok {
		t.Fatal("expected editor to be a map")
	}
	if editor["initialMode"] != "insert" {
		t.Errorf("initialMode = %v, want insert", editor["initialMode"])
	}
	if editor["statusOnUnknown"] != false {
		t.Errorf("statusOnUnknown = %v, want false", editor["statusOnUnknown"])
	}

	scripts := config["scripts"].(map[string]any)
	paths, ok := scripts["paths"].([]any)
	if !ok || len(paths) != 2 || paths[0] != "a.lua" {
		t.Errorf("paths = %#v", scripts["paths"])
	}
}

func TestTOMLLoader_LoadMissing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config != nil {
		t.Errorf("config = %v, want nil", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[editor]\ninitialMode = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("Path = %q", pe.Path)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
	if !strings.Contains(pe.Error(), "/bad.toml at line 2") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[keymap]\nfiles = [\"k.yaml\"]\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if _, ok := config["keymap"].(map[string]any); !ok {
		t.Errorf("config = %v", config)
	}

	_, err = NewTOMLLoader("").LoadFromReader(strings.NewReader("= broken"))
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != "<reader>" {
		t.Errorf("error = %v, want ParseError for <reader>", err)
	}
}

func TestParseErrorFormat(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a", Message: "m"}, "parse error in a: m"},
		{ParseError{Path: "a", Line: 3, Message: "m"}, "parse error in a at line 3: m"},
		{ParseError{Path: "a", Line: 3, Column: 4, Message: "m"}, "parse error in a at line 3, column 4: m"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor":  map[string]any{"logLevel": "info", "initialMode": "normal"},
		"scripts": map[string]any{"paths": []any{"a"}},
	}
	src := map[string]any{
		"editor":  map[string]any{"logLevel": "debug"},
		"scripts": map[string]any{"paths": []any{"b", "c"}},
		"keymap":  map[string]any{"files": []any{"k"}},
	}

	got := DeepMerge(dst, src)
	editor := got["editor"].(map[string]any)
	if editor["logLevel"] != "debug" || editor["initialMode"] != "normal" {
		t.Errorf("editor = %v", editor)
	}
	if paths := got["scripts"].(map[string]any)["paths"].([]any); len(paths) != 2 {
		t.Errorf("lists should be replaced, got %v", paths)
	}
	if _, ok := got["keymap"]; !ok {
		t.Error("new section not merged")
	}
	if DeepMerge(nil, nil) == nil {
		t.Error("DeepMerge(nil, nil) should return an empty map")
	}
}
