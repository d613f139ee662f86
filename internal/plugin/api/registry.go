package api

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Module adds a group of functions and constants to the ro table.
type Module interface {
	// Name returns the module name (e.g., "keymap", "command").
	Name() string

	// Register adds the module's fields to ro.
	Register(L *lua.LState, ro *lua.LTable) error
}

// Property is a field of ro backed by host state.
type Property struct {
	Get func(L *lua.LState) lua.LValue

	// Set is nil for read-only properties.
	Set func(L *lua.LState, v lua.LValue)
}

// PropertyProvider is implemented by modules that expose properties.
type PropertyProvider interface {
	Properties() map[string]Property
}

// Registry manages API modules and their installation.
type Registry struct {
	modules []Module
	byName  map[string]Module
}

// NewRegistry creates a new API registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Module)}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	if _, exists := r.byName[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}
	r.modules = append(r.modules, mod)
	r.byName[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	mod, ok := r.byName[name]
	return mod, ok
}

// List returns the module names in registration order.
func (r *Registry) List() []string {
	names := make([]string, len(r.modules))
	for i, mod := range r.modules {
		names[i] = mod.Name()
	}
	return names
}

// Install builds the ro table from every registered module.
func (r *Registry) Install(L *lua.LState) (*lua.LTable, error) {
	ro := L.NewTable()
	props := make(map[string]Property)

	for _, mod := range r.modules {
		if err := mod.Register(L, ro); err != nil {
			return nil, fmt.Errorf("failed to register module %q: %w", mod.Name(), err)
		}
		pp, ok := mod.(PropertyProvider)
		if !ok {
			continue
		}
		for name, p := range pp.Properties() {
			if _, dup := props[name]; dup {
				return nil, fmt.Errorf("module %q: property %q already defined", mod.Name(), name)
			}
			props[name] = p
		}
	}

	L.SetField(ro, "version", lua.LString(Version))
	if len(props) > 0 {
		L.SetMetatable(ro, propertyMetatable(L, props))
	}
	return ro, nil
}

// propertyMetatable routes reads and writes of property names to their
// accessors. Other names behave like plain table fields.
func propertyMetatable(L *lua.LState, props map[string]Property) *lua.LTable {
	mt := L.NewTable()

	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		name, ok := L.Get(2).(lua.LString)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		p, ok := props[string(name)]
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(p.Get(L))
		return 1
	}))

	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		if name, ok := L.Get(2).(lua.LString); ok {
			if p, ok := props[string(name)]; ok {
				if p.Set == nil {
					L.RaiseError("ro.%s: %s", name, ErrReadOnly)
					return 0
				}
				p.Set(L, L.Get(3))
				return 0
			}
		}
		L.RawSet(tbl, L.Get(2), L.Get(3))
		return 0
	}))

	return mt
}

// DefaultRegistry creates a registry with every standard module.
func DefaultRegistry(rt *Runtime) (*Registry, error) {
	r := NewRegistry()

	modules := []Module{
		NewKeysModule(),
		NewModeModule(rt),
		NewCursorModule(rt),
		NewUIModule(rt),
		NewKeymapModule(rt),
		NewCommandModule(rt),
	}
	for _, mod := range modules {
		if err := r.Register(mod); err != nil {
			return nil, fmt.Errorf("failed to register module %q: %w", mod.Name(), err)
		}
	}
	return r, nil
}
