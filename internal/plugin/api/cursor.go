package api

import (
	lua "github.com/yuin/gopher-lua"
)

// CursorModule exposes the host cursor and the pending multiplier.
type CursorModule struct {
	rt *Runtime
}

// NewCursorModule creates a new cursor module.
func NewCursorModule(rt *Runtime) *CursorModule {
	return &CursorModule{rt: rt}
}

// Name returns the module name.
func (m *CursorModule) Name() string {
	return "cursor"
}

// Register adds ro.move.
func (m *CursorModule) Register(L *lua.LState, ro *lua.LTable) error {
	L.SetField(ro, "move", L.NewFunction(m.move))
	return nil
}

// Properties returns ro.row, ro.col and ro.multiplier.
func (m *CursorModule) Properties() map[string]Property {
	return map[string]Property{
		"row": {
			Get: func(*lua.LState) lua.LValue {
				row, _ := m.rt.ctx().Cursor()
				return lua.LNumber(row)
			},
			Set: func(L *lua.LState, v lua.LValue) {
				ctx := m.rt.ctx()
				_, col := ctx.Cursor()
				ctx.SetCursor(checkInt(L, "row", v), col)
			},
		},
		"col": {
			Get: func(*lua.LState) lua.LValue {
				_, col := m.rt.ctx().Cursor()
				return lua.LNumber(col)
			},
			Set: func(L *lua.LState, v lua.LValue) {
				ctx := m.rt.ctx()
				row, _ := ctx.Cursor()
				ctx.SetCursor(row, checkInt(L, "col", v))
			},
		},
		"multiplier": {
			Get: func(*lua.LState) lua.LValue {
				return lua.LNumber(m.rt.ctx().Count.Value())
			},
		},
	}
}

// move(dRow, dCol)
// Moves the cursor by the given offsets times the multiplier, consuming it.
func (m *CursorModule) move(L *lua.LState) int {
	dRow := L.CheckInt(1)
	dCol := L.OptInt(2, 0)

	ctx := m.rt.ctx()
	n := ctx.TakeCount()
	row, col := ctx.Cursor()
	ctx.SetCursor(row+dRow*n, col+dCol*n)
	return 0
}

func checkInt(L *lua.LState, name string, v lua.LValue) int {
	n, ok := v.(lua.LNumber)
	if !ok {
		L.RaiseError("ro.%s: number expected, got %s", name, v.Type())
		return 0
	}
	return int(n)
}
