package api

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/cleichner/rotide/internal/input/key"
	"github.com/cleichner/rotide/internal/input/mode"
)

// KeymapModule implements ro.bind and ro.unbind.
type KeymapModule struct {
	rt *Runtime
}

// NewKeymapModule creates a new keymap module.
func NewKeymapModule(rt *Runtime) *KeymapModule {
	return &KeymapModule{rt: rt}
}

// Name returns the module name.
func (m *KeymapModule) Name() string {
	return "keymap"
}

// Register adds the keymap functions.
func (m *KeymapModule) Register(L *lua.LState, ro *lua.LTable) error {
	L.SetField(ro, "bind", L.NewFunction(m.bind))
	L.SetField(ro, "unbind", L.NewFunction(m.unbind))
	return nil
}

// bind(keys, fn, opts?) -> nil
// keys is a table of key codes or a notation string such as "<C-a><C-b>".
// opts is a mode name or a table with mode (name or list of names) and
// name fields. The default mode is normal.
func (m *KeymapModule) bind(L *lua.LState) int {
	seq := m.sequence(L, 1)
	fn := L.CheckFunction(2)
	modes, name := m.options(L, 3)
	if name == "" {
		name = seq.String()
	}

	for _, md := range modes {
		if err := m.rt.host.Bind(md, seq, name, m.rt.keyHandler(name, fn)); err != nil {
			L.RaiseError("bind: %v", err)
			return 0
		}
		m.rt.trackBinding(md, seq)
	}
	return 0
}

// unbind(keys, opts?) -> bool
// Returns true if any binding was removed.
func (m *KeymapModule) unbind(L *lua.LState) int {
	seq := m.sequence(L, 1)
	modes, _ := m.options(L, 2)

	removed := false
	for _, md := range modes {
		if m.rt.host.Unbind(md, seq) {
			removed = true
			m.rt.untrackBinding(md, seq)
		}
	}
	L.Push(lua.LBool(removed))
	return 1
}

// sequence reads argument n as a key sequence.
func (m *KeymapModule) sequence(L *lua.LState, n int) key.Sequence {
	switch v := L.Get(n).(type) {
	case lua.LString:
		seq, err := key.ParseSequence(string(v))
		if err != nil {
			L.ArgError(n, err.Error())
			return nil
		}
		return seq
	case lua.LNumber:
		return key.NewSequence(key.Code(v))
	case *lua.LTable:
		codes, err := m.rt.bridge.Ints(v)
		if err != nil {
			L.ArgError(n, err.Error())
			return nil
		}
		if len(codes) == 0 {
			L.ArgError(n, "keys cannot be empty")
			return nil
		}
		seq := make(key.Sequence, len(codes))
		for i, c := range codes {
			seq[i] = key.Code(c)
		}
		return seq
	default:
		L.ArgError(n, "keys must be a string or a table of key codes")
		return nil
	}
}

// options reads the modes and name from argument n.
func (m *KeymapModule) options(L *lua.LState, n int) ([]mode.Mode, string) {
	switch v := L.Get(n).(type) {
	case *lua.LNilType:
		return []mode.Mode{mode.Normal}, ""
	case lua.LString:
		modes, err := parseModes(v)
		if err != nil {
			L.ArgError(n, err.Error())
		}
		return modes, ""
	case *lua.LTable:
		modes := []mode.Mode{mode.Normal}
		if mv := v.RawGetString("mode"); mv != lua.LNil {
			var err error
			if modes, err = parseModes(mv); err != nil {
				L.ArgError(n, err.Error())
			}
		}
		name, _ := m.rt.bridge.GetTableString(v, "name")
		return modes, name
	default:
		L.ArgError(n, "options must be a mode name or a table")
		return nil, ""
	}
}

// parseModes reads a mode name or a list of mode names.
func parseModes(v lua.LValue) ([]mode.Mode, error) {
	switch mv := v.(type) {
	case lua.LString:
		md, err := mode.Parse(string(mv))
		if err != nil {
			return nil, err
		}
		return []mode.Mode{md}, nil
	case *lua.LTable:
		var modes []mode.Mode
		for i := 1; i <= mv.Len(); i++ {
			s, ok := mv.RawGetInt(i).(lua.LString)
			if !ok {
				return nil, fmt.Errorf("mode %d is not a string", i)
			}
			md, err := mode.Parse(string(s))
			if err != nil {
				return nil, err
			}
			modes = append(modes, md)
		}
		if len(modes) == 0 {
			return nil, fmt.Errorf("no modes given")
		}
		return modes, nil
	default:
		return nil, fmt.Errorf("mode must be a string or a list, got %s", v.Type())
	}
}
