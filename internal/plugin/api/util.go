package api

import (
	"unicode"

	lua "github.com/yuin/gopher-lua"

	"github.com/cleichner/rotide/internal/input/key"
)

// KeysModule provides key code constants and key parsing.
type KeysModule struct{}

// NewKeysModule creates a new keys module.
func NewKeysModule() *KeysModule {
	return &KeysModule{}
}

// Name returns the module name.
func (m *KeysModule) Name() string {
	return "keys"
}

// Register adds ro.A..ro.Z, ro.CTRL_A..ro.CTRL_Z, the named keys and the
// key helpers.
func (m *KeysModule) Register(L *lua.LState, ro *lua.LTable) error {
	for r := 'a'; r <= 'z'; r++ {
		upper := string(unicode.ToUpper(r))
		L.SetField(ro, upper, lua.LNumber(key.Rune(r)))
		L.SetField(ro, "CTRL_"+upper, lua.LNumber(key.Ctrl(r)))
	}

	named := map[string]key.Code{
		"ESC":       key.Escape,
		"ENTER":     key.Enter,
		"NEWLINE":   key.Newline,
		"TAB":       key.Tab,
		"SPACE":     key.Space,
		"COLON":     key.Colon,
		"BACKSPACE": key.Backspace,
		"UP":        key.Up,
		"DOWN":      key.Down,
		"LEFT":      key.Left,
		"RIGHT":     key.Right,
		"HOME":      key.Home,
		"END":       key.End,
		"DELETE":    key.Delete,
	}
	for name, c := range named {
		L.SetField(ro, name, lua.LNumber(c))
	}

	L.SetField(ro, "key", L.NewFunction(m.key))
	L.SetField(ro, "keys", L.NewFunction(m.keys))
	L.SetField(ro, "key_name", L.NewFunction(m.keyName))
	return nil
}

// key(spec) -> code
// Parses one key: "x", "<C-a>", "<Esc>".
func (m *KeysModule) key(L *lua.LState) int {
	c, err := key.Parse(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LNumber(c))
	return 1
}

// keys(notation) -> {code, ...}
func (m *KeysModule) keys(L *lua.LState) int {
	seq, err := key.ParseSequence(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	tbl := L.CreateTable(seq.Len(), 0)
	for i, c := range seq {
		tbl.RawSetInt(i+1, lua.LNumber(c))
	}
	L.Push(tbl)
	return 1
}

// key_name(code) -> notation
func (m *KeysModule) keyName(L *lua.LState) int {
	L.Push(lua.LString(key.Code(L.CheckInt(1)).String()))
	return 1
}
