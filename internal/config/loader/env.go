package loader

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Prefix is the prefix of every environment variable the loader reads.
const Prefix = "ROTIDE_"

// EnvLoader loads configuration from environment variables.
//
// Mapped variables keep their raw string value, or are split on the OS
// path-list separator when their path is a list. Other prefixed variables
// are converted by name (ROTIDE_SCRIPTS_WATCH becomes scripts.watch) and
// their values parsed as bool, int or string.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "ROTIDE_")
	mapping map[string]string // Env var -> config path
	lists   map[string]bool   // Config paths holding lists
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "ROTIDE_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		lists: map[string]bool{
			"scripts.paths": true,
			"keymap.files":  true,
		},
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"ROTIDE_LOG_LEVEL":    "editor.logLevel",
		"ROTIDE_MODE":         "editor.initialMode",
		"ROTIDE_SCRIPTS":      "scripts.paths",
		"ROTIDE_KEYMAP_FILES": "keymap.files",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads environment variables and returns a configuration map.
// Empty values are treated as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		switch {
		case mapped && l.lists[path]:
			setByPath(config, path, splitList(value))
		case mapped:
			setByPath(config, path, value)
		default:
			path = l.envToPath(name)
			if l.lists[path] {
				setByPath(config, path, splitList(value))
			} else {
				setByPath(config, path, parseValue(value))
			}
		}
	}

	return config, nil
}

// envToPath converts ROTIDE_EDITOR_INITIAL_MODE to editor.initialMode.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + setting
}

// splitList splits a path list, dropping empty entries.
func splitList(s string) []any {
	var out []any
	for _, p := range filepath.SplitList(s) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
