package keymap

import "github.com/cleichner/rotide/internal/input/mode"

// Built-in action names.
const (
	ActionInsert      = "mode.insert"
	ActionEscape      = "mode.escape"
	ActionCommandLine = "mode.commandLine"

	ActionLeft      = "cursor.left"
	ActionRight     = "cursor.right"
	ActionUp        = "cursor.up"
	ActionDown      = "cursor.down"
	ActionLineStart = "cursor.lineStart"
	ActionZero      = "cursor.zero"
	ActionDigit     = "count.digit"
)

// Default returns the built-in keymap.
func Default() *Keymap {
	km := NewKeymap("default").WithSource("default").
		Add(mode.Normal, "i", ActionInsert).
		Add(mode.Normal, "<Esc>", ActionEscape).
		Add(mode.Insert, "<Esc>", ActionEscape).
		Add(mode.Normal, ":", ActionCommandLine).
		Add(mode.Normal, "h", ActionLeft).
		Add(mode.Normal, "<Left>", ActionLeft).
		Add(mode.Normal, "j", ActionDown).
		Add(mode.Normal, "<Down>", ActionDown).
		Add(mode.Normal, "k", ActionUp).
		Add(mode.Normal, "<Up>", ActionUp).
		Add(mode.Normal, "l", ActionRight).
		Add(mode.Normal, "<Right>", ActionRight).
		Add(mode.Normal, "0", ActionZero).
		Add(mode.Normal, "<Home>", ActionLineStart).
		Add(mode.Insert, "<Left>", ActionLeft).
		Add(mode.Insert, "<Down>", ActionDown).
		Add(mode.Insert, "<Up>", ActionUp).
		Add(mode.Insert, "<Right>", ActionRight).
		Add(mode.Insert, "<Home>", ActionLineStart)

	for d := '1'; d <= '9'; d++ {
		km.Add(mode.Normal, string(d), ActionDigit)
	}
	return km
}
