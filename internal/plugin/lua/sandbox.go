package lua

import (
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Printer receives the output of Lua's print.
type Printer interface {
	Info(msg string, args ...any)
}

// Sandbox restricts a Lua state to safe operations.
type Sandbox struct {
	L *lua.LState

	// modules are the values require may return.
	modules map[string]lua.LValue
	printer Printer
}

// removedGlobals are base library functions that load code from outside
// the host or expose interpreter internals.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"module",
	"_printregs",
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{
		L:       L,
		modules: make(map[string]lua.LValue),
	}
}

// Install removes unsafe globals and replaces require and print.
func (s *Sandbox) Install() {
	for _, name := range removedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	for _, lib := range []string{"string", "table", "math", "coroutine"} {
		if v := s.L.GetGlobal(lib); v != lua.LNil {
			s.modules[lib] = v
		}
	}

	s.L.SetGlobal("require", s.L.NewFunction(s.require))
	s.L.SetGlobal("print", s.L.NewFunction(s.print))
}

// require resolves only modules provided to the sandbox.
func (s *Sandbox) require(L *lua.LState) int {
	name := L.CheckString(1)
	mod, ok := s.modules[name]
	if !ok {
		L.RaiseError("module %q is not available", name)
		return 0
	}
	L.Push(mod)
	return 1
}

// print joins its arguments with tabs and sends them to the printer.
func (s *Sandbox) print(L *lua.LState) int {
	if s.printer == nil {
		return 0
	}
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	s.printer.Info("lua: %s", strings.Join(parts, "\t"))
	return 0
}

// Provide makes value available through require(name).
func (s *Sandbox) Provide(name string, value lua.LValue) {
	s.modules[name] = value
}

// Modules returns the names require resolves, sorted.
func (s *Sandbox) Modules() []string {
	names := make([]string, 0, len(s.modules))
	for name := range s.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetPrinter routes print output. A nil printer discards it.
func (s *Sandbox) SetPrinter(p Printer) {
	s.printer = p
}
