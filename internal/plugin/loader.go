package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader discovers Lua scripts on the filesystem.
//
// Each search path is either a single .lua file or a directory. A directory
// contributes its *.lua files in name order and every subdirectory holding
// an init.lua.
type Loader struct {
	// Search paths (checked in order)
	paths []string

	// Discovered scripts by name
	discovered map[string]*ScriptInfo
}

// ScriptInfo contains discovery information about a script.
type ScriptInfo struct {
	Name  string
	Path  string
	State State
	Error error
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPaths sets the script search paths.
func WithPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.paths = paths
	}
}

// NewLoader creates a new script loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		discovered: make(map[string]*ScriptInfo),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Paths returns the configured search paths.
func (l *Loader) Paths() []string {
	return l.paths
}

// AddPath adds a search path.
func (l *Loader) AddPath(path string) {
	l.paths = append(l.paths, path)
}

// Discover finds all scripts in the search paths, in load order.
// A missing directory is skipped; a missing file is reported through
// ScriptInfo.Error. The first script found under a given name wins.
func (l *Loader) Discover() ([]*ScriptInfo, error) {
	l.discovered = make(map[string]*ScriptInfo)

	var scripts []*ScriptInfo
	add := func(info *ScriptInfo) {
		if _, exists := l.discovered[info.Name]; exists {
			return
		}
		l.discovered[info.Name] = info
		scripts = append(scripts, info)
	}

	for _, p := range l.paths {
		found, err := l.discoverInPath(p)
		if err != nil {
			return scripts, fmt.Errorf("discover %s: %w", p, err)
		}
		for _, info := range found {
			add(info)
		}
	}
	return scripts, nil
}

// discoverInPath finds scripts under a single search path.
func (l *Loader) discoverInPath(path string) ([]*ScriptInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if filepath.Ext(path) == ".lua" {
				return []*ScriptInfo{errored(path, ErrScriptNotFound)}, nil
			}
			return nil, nil
		}
		return nil, err
	}

	if !stat.IsDir() {
		if filepath.Ext(path) != ".lua" {
			return []*ScriptInfo{errored(path, ErrNotLua)}, nil
		}
		return []*ScriptInfo{newScriptInfo(scriptName(path), path)}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var found []*ScriptInfo
	for _, entry := range entries {
		full := filepath.Join(path, entry.Name())
		if !entry.IsDir() {
			if filepath.Ext(entry.Name()) == ".lua" {
				found = append(found, newScriptInfo(scriptName(full), full))
			}
			continue
		}
		found = append(found, inspectDir(entry.Name(), full))
	}
	return found, nil
}

// inspectDir examines a script directory.
func inspectDir(name, dir string) *ScriptInfo {
	initPath := filepath.Join(dir, "init.lua")
	if _, err := os.Stat(initPath); err == nil {
		return newScriptInfo(name, initPath)
	}
	info := newScriptInfo(name, dir)
	info.State = StateError
	info.Error = ErrNoEntryPoint
	return info
}

func newScriptInfo(name, path string) *ScriptInfo {
	return &ScriptInfo{Name: name, Path: path, State: StateUnloaded}
}

func errored(path string, err error) *ScriptInfo {
	return &ScriptInfo{
		Name:  scriptName(path),
		Path:  path,
		State: StateError,
		Error: fmt.Errorf("%w: %s", err, path),
	}
}

func scriptName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".lua")
}

// Get returns info for a discovered script by name.
func (l *Loader) Get(name string) (*ScriptInfo, bool) {
	info, ok := l.discovered[name]
	return info, ok
}

// ListNames returns the names of all discovered scripts, sorted.
func (l *Loader) ListNames() []string {
	names := make([]string, 0, len(l.discovered))
	for name := range l.discovered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of discovered scripts.
func (l *Loader) Count() int {
	return len(l.discovered)
}

// Errors returns the discovered scripts that carry an error.
func (l *Loader) Errors() []*ScriptInfo {
	var errs []*ScriptInfo
	for _, name := range l.ListNames() {
		if info := l.discovered[name]; info.Error != nil {
			errs = append(errs, info)
		}
	}
	return errs
}
