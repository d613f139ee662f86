package plugin

import (
	"errors"
	"fmt"

	"github.com/cleichner/rotide/internal/plugin/api"
	plua "github.com/cleichner/rotide/internal/plugin/lua"
)

// BuiltinPath is the Path reported for the scripts embedded in the binary.
const BuiltinPath = "<builtin>"

// Manager owns the Lua runtime and the scripts loaded into it.
// It handles discovery, loading, reloading, and event dispatching.
//
// Manager is not safe for concurrent use; the application event loop
// drives it between key events.
type Manager struct {
	host   api.Host
	loader *Loader
	config ManagerConfig

	runtime *api.Runtime
	scripts []*ScriptInfo

	// Event handlers
	eventHandlers []EventHandler

	closed bool
}

// ManagerConfig configures the script manager.
type ManagerConfig struct {
	// Paths are files or directories to load scripts from
	Paths []string

	// Builtin loads the embedded runtime scripts before user scripts
	Builtin bool

	// Logger receives load failures and script print output
	Logger api.Logger

	// StateOptions tune the Lua interpreter
	StateOptions []plua.StateOption

	// OnReset runs during Reload after the old scripts are unloaded and
	// before the new ones run
	OnReset func()
}

// DefaultManagerConfig returns a configuration that loads only the
// builtin scripts.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{Builtin: true}
}

// EventHandler handles script manager events. Panics in handlers are
// recovered.
type EventHandler func(event ManagerEvent)

// ManagerEvent represents a script manager event.
type ManagerEvent struct {
	Type   ManagerEventType
	Script string
	Error  error
}

// ManagerEventType is the type of manager event.
type ManagerEventType int

const (
	// EventScriptLoaded is emitted when a script runs successfully.
	EventScriptLoaded ManagerEventType = iota
	// EventScriptError is emitted when a script fails to load.
	EventScriptError
	// EventReloaded is emitted after every script has been reloaded.
	EventReloaded
)

// String returns a string representation of the event type.
func (t ManagerEventType) String() string {
	switch t {
	case EventScriptLoaded:
		return "loaded"
	case EventScriptError:
		return "error"
	case EventReloaded:
		return "reloaded"
	default:
		return "unknown"
	}
}

// NewManager creates a script manager registering into host.
func NewManager(host api.Host, config ManagerConfig) *Manager {
	return &Manager{
		host:   host,
		loader: NewLoader(WithPaths(config.Paths...)),
		config: config,
	}
}

// LoadAll creates the runtime if needed and runs the builtin scripts then
// every discovered script. A failing script does not stop the others; the
// joined failures are returned.
func (m *Manager) LoadAll() error {
	if m.closed {
		return ErrClosed
	}
	if m.runtime == nil {
		opts := []api.Option{api.WithStateOptions(m.config.StateOptions...)}
		if m.config.Logger != nil {
			opts = append(opts, api.WithLogger(m.config.Logger))
		}
		rt, err := api.NewRuntime(m.host, opts...)
		if err != nil {
			return fmt.Errorf("create runtime: %w", err)
		}
		m.runtime = rt
	}

	m.scripts = nil
	var errs []error

	if m.config.Builtin {
		info := newScriptInfo("runtime", BuiltinPath)
		m.record(info, m.runtime.LoadBuiltin())
		if info.Error != nil {
			errs = append(errs, info.Error)
		}
	}

	discovered, err := m.loader.Discover()
	if err != nil {
		errs = append(errs, err)
	}
	for _, info := range discovered {
		if info.Error == nil {
			m.record(info, m.runtime.LoadFile(info.Path))
		} else {
			m.record(info, info.Error)
		}
		if info.Error != nil {
			errs = append(errs, info.Error)
		}
	}
	return errors.Join(errs...)
}

// record stores the outcome of loading info and reports it.
func (m *Manager) record(info *ScriptInfo, err error) {
	m.scripts = append(m.scripts, info)
	if err != nil {
		info.State = StateError
		info.Error = err
		if m.config.Logger != nil {
			m.config.Logger.Warn("script %s: %v", info.Name, err)
		}
		m.emitEvent(ManagerEvent{Type: EventScriptError, Script: info.Name, Error: err})
		return
	}
	info.State = StateLoaded
	m.emitEvent(ManagerEvent{Type: EventScriptLoaded, Script: info.Name})
}

// Reload tears down the runtime, removing every binding and command the
// scripts registered, runs OnReset, and loads everything again in a fresh
// interpreter.
func (m *Manager) Reload() error {
	if m.closed {
		return ErrClosed
	}
	if m.runtime != nil {
		if err := m.runtime.Close(); err != nil && m.config.Logger != nil {
			m.config.Logger.Warn("close runtime: %v", err)
		}
		m.runtime = nil
	}
	if m.config.OnReset != nil {
		m.config.OnReset()
	}
	err := m.LoadAll()
	m.emitEvent(ManagerEvent{Type: EventReloaded, Error: err})
	return err
}

// Close unloads every script and releases the interpreter.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	if m.runtime == nil {
		return nil
	}
	err := m.runtime.Close()
	m.runtime = nil
	return err
}

// Subscribe adds an event handler.
// Returns an unsubscribe function to remove the handler.
func (m *Manager) Subscribe(handler EventHandler) func() {
	if handler == nil {
		return func() {}
	}
	m.eventHandlers = append(m.eventHandlers, handler)
	index := len(m.eventHandlers) - 1
	return func() {
		// Set to nil instead of removing to avoid index shifting issues
		if index < len(m.eventHandlers) {
			m.eventHandlers[index] = nil
		}
	}
}

// Scripts returns the scripts from the last load, in load order.
func (m *Manager) Scripts() []*ScriptInfo {
	return append([]*ScriptInfo(nil), m.scripts...)
}

// Count returns the number of loaded scripts.
func (m *Manager) Count() int {
	n := 0
	for _, info := range m.scripts {
		if info.State == StateLoaded {
			n++
		}
	}
	return n
}

// Errors returns the scripts that failed, keyed by name.
func (m *Manager) Errors() map[string]error {
	errs := make(map[string]error)
	for _, info := range m.scripts {
		if info.Error != nil {
			errs[info.Name] = info.Error
		}
	}
	return errs
}

// WatchPaths returns the paths whose changes should trigger a reload: the
// configured search paths plus every discovered script file.
func (m *Manager) WatchPaths() []string {
	paths := append([]string(nil), m.loader.Paths()...)
	for _, info := range m.scripts {
		if info.Path != BuiltinPath {
			paths = append(paths, info.Path)
		}
	}
	return paths
}

// Runtime returns the live runtime, or nil before LoadAll.
func (m *Manager) Runtime() *api.Runtime {
	return m.runtime
}

// Loader returns the underlying loader.
func (m *Manager) Loader() *Loader {
	return m.loader
}

// emitEvent sends an event to all handlers with panic recovery.
func (m *Manager) emitEvent(event ManagerEvent) {
	for _, handler := range m.eventHandlers {
		if handler == nil {
			continue
		}
		func() {
			defer func() { _ = recover() }()
			handler(event)
		}()
	}
}
