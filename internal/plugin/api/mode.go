package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cleichner/rotide/internal/input/mode"
)

// ModeModule exposes the active mode and the insert flag.
type ModeModule struct {
	rt *Runtime
}

// NewModeModule creates a new mode module.
func NewModeModule(rt *Runtime) *ModeModule {
	return &ModeModule{rt: rt}
}

// Name returns the module name.
func (m *ModeModule) Name() string {
	return "mode"
}

// Register adds the mode name constants.
func (m *ModeModule) Register(L *lua.LState, ro *lua.LTable) error {
	L.SetField(ro, "NORMAL", lua.LString(mode.Normal.String()))
	L.SetField(ro, "INSERT", lua.LString(mode.Insert.String()))
	L.SetField(ro, "COMMAND_LINE", lua.LString(mode.CommandLine.String()))
	return nil
}

// Properties returns ro.mode and ro.insert_mode.
func (m *ModeModule) Properties() map[string]Property {
	return map[string]Property{
		"mode": {
			Get: func(*lua.LState) lua.LValue {
				return lua.LString(m.rt.ctx().Mode.Current().String())
			},
			Set: m.setMode,
		},
		"insert_mode": {
			Get: func(*lua.LState) lua.LValue {
				return lua.LBool(m.rt.ctx().InsertMode())
			},
			Set: func(_ *lua.LState, v lua.LValue) {
				m.rt.ctx().SetInsertMode(lua.LVAsBool(v))
			},
		},
	}
}

// setMode switches modes by name. The command line is opened and closed
// through the context so its buffer and status stay consistent.
func (m *ModeModule) setMode(L *lua.LState, v lua.LValue) {
	target, err := mode.Parse(lua.LVAsString(v))
	if err != nil {
		L.RaiseError("ro.mode: %v", err)
		return
	}

	ctx := m.rt.ctx()
	switch {
	case target == mode.CommandLine:
		if !ctx.Mode.Is(mode.CommandLine) {
			ctx.EnterCommandLine()
		}
	case ctx.Mode.Is(mode.CommandLine):
		ctx.LeaveCommandLine()
		ctx.Mode.Switch(target)
	default:
		ctx.Mode.Switch(target)
	}
}
