package api

import (
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/cleichner/rotide/internal/input/key"
)

func TestKeyConstants(t *testing.T) {
	f := newFixture(t)
	state := f.rt.State()
	ro := state.GetGlobal("ro")

	tests := []struct {
		name string
		want key.Code
	}{
		{"A", 'a'},
		{"Z", 'z'},
		{"I", 'i'},
		{"CTRL_A", key.CtrlA},
		{"CTRL_Z", key.CtrlZ},
		{"ESC", key.Escape},
		{"ENTER", key.Enter},
		{"COLON", key.Colon},
		{"BACKSPACE", key.Backspace},
		{"UP", key.Up},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := state.L.GetField(ro, tt.name); got != lua.LNumber(tt.want) {
				t.Errorf("ro.%s = %v, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestKeyHelpers(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		esc = ro.key("<Esc>")
		x = ro.key("x")
		seq = ro.keys("<C-a><C-b>")
		name = ro.key_name(ro.CTRL_A)
	`)

	state := f.rt.State()
	if got := state.GetGlobal("esc"); got != lua.LNumber(key.Escape) {
		t.Errorf("esc = %v", got)
	}
	if got := state.GetGlobal("x"); got != lua.LNumber('x') {
		t.Errorf("x = %v", got)
	}
	if got := state.GetGlobal("name").String(); got != "<C-a>" {
		t.Errorf("name = %s", got)
	}

	ints, err := f.rt.bridge.Ints(state.GetGlobal("seq").(*lua.LTable))
	if err != nil || len(ints) != 2 || ints[0] != int(key.CtrlA) || ints[1] != int(key.CtrlB) {
		t.Errorf("seq = %v, %v", ints, err)
	}

	if err := f.rt.LoadString("bad.lua", `ro.key("nope")`); err == nil {
		t.Error("ro.key with an unknown name should fail")
	}
}
