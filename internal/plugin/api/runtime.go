package api

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/cleichner/rotide/internal/dispatcher"
	"github.com/cleichner/rotide/internal/dispatcher/execctx"
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/input/key"
	"github.com/cleichner/rotide/internal/input/mode"
	plua "github.com/cleichner/rotide/internal/plugin/lua"
)

// Version is the ro API version reported as ro.version.
const Version = "1.0"

//go:embed runtime/*.lua
var builtinScripts embed.FS

// Host is the editor surface scripts drive. *input.Handler implements it.
type Host interface {
	Bind(m mode.Mode, seq key.Sequence, name string, h handler.Handler) error
	Unbind(m mode.Mode, seq key.Sequence) bool
	Restore(m mode.Mode, seq key.Sequence) bool
	OnCommand(fn handler.CommandHandler) (uuid.UUID, error)
	RemoveCommand(id uuid.UUID) bool
	Submit(text string) dispatcher.Outcome
	Context() *execctx.Context
}

// Logger is the logging surface of the runtime.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type bindingRef struct {
	mode mode.Mode
	seq  key.Sequence
}

// Runtime runs scripts against a Host.
type Runtime struct {
	host      Host
	logger    Logger
	stateOpts []plua.StateOption

	state    *plua.State
	bridge   *plua.Bridge
	registry *Registry

	bindings []bindingRef
	commands []uuid.UUID
	loaded   []string
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger for script output and handler errors.
func WithLogger(l Logger) Option {
	return func(r *Runtime) {
		r.logger = l
	}
}

// WithStateOptions passes options to the Lua state.
func WithStateOptions(opts ...plua.StateOption) Option {
	return func(r *Runtime) {
		r.stateOpts = append(r.stateOpts, opts...)
	}
}

// NewRuntime creates a runtime with the ro table installed.
func NewRuntime(host Host, opts ...Option) (*Runtime, error) {
	rt := &Runtime{host: host}
	for _, opt := range opts {
		opt(rt)
	}

	state, err := plua.NewState(rt.stateOpts...)
	if err != nil {
		return nil, fmt.Errorf("create lua state: %w", err)
	}
	rt.state = state
	rt.bridge = plua.NewBridge(state.L)

	registry, err := DefaultRegistry(rt)
	if err != nil {
		_ = state.Close()
		return nil, err
	}
	ro, err := registry.Install(state.L)
	if err != nil {
		_ = state.Close()
		return nil, err
	}
	rt.registry = registry

	state.SetGlobal("ro", ro)
	state.Sandbox().Provide("ro", ro)
	if rt.logger != nil {
		state.Sandbox().SetPrinter(rt.logger)
	}
	return rt, nil
}

// LoadFile runs a script file.
func (rt *Runtime) LoadFile(file string) error {
	if err := rt.state.DoFile(file); err != nil {
		return &ScriptError{Script: file, Err: err}
	}
	rt.loaded = append(rt.loaded, file)
	return nil
}

// LoadString runs a script held in memory. name identifies it in errors.
func (rt *Runtime) LoadString(name, src string) error {
	if err := rt.state.Load(strings.NewReader(src), name); err != nil {
		return &ScriptError{Script: name, Err: err}
	}
	rt.loaded = append(rt.loaded, name)
	return nil
}

// LoadBuiltin runs the scripts embedded in the binary, in name order.
func (rt *Runtime) LoadBuiltin() error {
	names, err := fs.Glob(builtinScripts, "runtime/*.lua")
	if err != nil {
		return err
	}
	for _, name := range names {
		src, err := builtinScripts.ReadFile(name)
		if err != nil {
			return err
		}
		if err := rt.LoadString(path.Base(name), string(src)); err != nil {
			return err
		}
	}
	return nil
}

// Loaded returns the scripts run so far.
func (rt *Runtime) Loaded() []string {
	return append([]string(nil), rt.loaded...)
}

// Unload removes every binding and command handler the scripts
// registered. A sequence a script rebound goes back to its keymap binding,
// so unloading a script that overrode i leaves the default i in place.
// Keymap bindings a script removed with ro.unbind stay removed.
func (rt *Runtime) Unload() {
	for _, b := range rt.bindings {
		rt.host.Restore(b.mode, b.seq)
	}
	for _, id := range rt.commands {
		rt.host.RemoveCommand(id)
	}
	rt.bindings = nil
	rt.commands = nil
	rt.loaded = nil
}

// Close unloads the scripts and releases the interpreter.
func (rt *Runtime) Close() error {
	rt.Unload()
	return rt.state.Close()
}

// State returns the Lua state.
func (rt *Runtime) State() *plua.State {
	return rt.state
}

// Registry returns the module registry.
func (rt *Runtime) Registry() *Registry {
	return rt.registry
}

// BindingCount returns how many bindings the scripts hold.
func (rt *Runtime) BindingCount() int {
	return len(rt.bindings)
}

// CommandCount returns how many command handlers the scripts hold.
func (rt *Runtime) CommandCount() int {
	return len(rt.commands)
}

func (rt *Runtime) ctx() *execctx.Context {
	return rt.host.Context()
}

func (rt *Runtime) warn(msg string, args ...any) {
	if rt.logger != nil {
		rt.logger.Warn(msg, args...)
	}
}

func (rt *Runtime) trackBinding(m mode.Mode, seq key.Sequence) {
	for _, b := range rt.bindings {
		if b.mode == m && b.seq.Equals(seq) {
			return
		}
	}
	rt.bindings = append(rt.bindings, bindingRef{mode: m, seq: seq.Clone()})
}

func (rt *Runtime) untrackBinding(m mode.Mode, seq key.Sequence) {
	for i, b := range rt.bindings {
		if b.mode == m && b.seq.Equals(seq) {
			rt.bindings = append(rt.bindings[:i:i], rt.bindings[i+1:]...)
			return
		}
	}
}

func (rt *Runtime) untrackCommand(id uuid.UUID) {
	for i, c := range rt.commands {
		if c == id {
			rt.commands = append(rt.commands[:i:i], rt.commands[i+1:]...)
			return
		}
	}
}

// keyHandler wraps a Lua function as a key handler. A false result or a
// Lua error declines.
func (rt *Runtime) keyHandler(name string, fn *lua.LFunction) handler.Func {
	return func(*execctx.Context) handler.Result {
		results, err := rt.state.Call(fn)
		if err != nil {
			rt.warn("binding %s: %v", name, err)
			return handler.Declined
		}
		if len(results) > 0 && results[0] == lua.LFalse {
			return handler.Declined
		}
		return handler.Consumed
	}
}

// commandHandler wraps a Lua function as a command handler. The function
// receives the command name and arguments; a truthy result accepts.
func (rt *Runtime) commandHandler(fn *lua.LFunction) handler.CommandFunc {
	return func(_ *execctx.Context, name string, args []string) handler.Result {
		params := make([]lua.LValue, 0, len(args)+1)
		params = append(params, lua.LString(name))
		for _, a := range args {
			params = append(params, lua.LString(a))
		}

		results, err := rt.state.Call(fn, params...)
		if err != nil {
			rt.warn("command %s: %v", name, err)
			return handler.Declined
		}
		if len(results) > 0 && lua.LVAsBool(results[0]) {
			return handler.Accepted
		}
		return handler.Declined
	}
}
