package api

import (
	lua "github.com/yuin/gopher-lua"
)

// UIModule exposes the status line and screen annotations.
type UIModule struct {
	rt *Runtime
}

// NewUIModule creates a new UI module.
func NewUIModule(rt *Runtime) *UIModule {
	return &UIModule{rt: rt}
}

// Name returns the module name.
func (m *UIModule) Name() string {
	return "ui"
}

// Register adds ro.test.
func (m *UIModule) Register(L *lua.LState, ro *lua.LTable) error {
	L.SetField(ro, "test", L.NewFunction(m.test))
	return nil
}

// Properties returns ro.status.
func (m *UIModule) Properties() map[string]Property {
	return map[string]Property{
		"status": {
			Get: func(*lua.LState) lua.LValue {
				return lua.LString(m.rt.ctx().Status())
			},
			Set: func(L *lua.LState, v lua.LValue) {
				text := ""
				if v != lua.LNil {
					text = L.ToStringMeta(v).String()
				}
				m.rt.ctx().SetStatus(text)
			},
		},
	}
}

// test(row, col, text)
// Places text on the screen at (row, col).
func (m *UIModule) test(L *lua.LState) int {
	row := L.CheckInt(1)
	col := L.CheckInt(2)
	text := L.CheckString(3)
	m.rt.ctx().Annotate(row, col, text)
	return 0
}
