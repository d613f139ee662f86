package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Code identifies a single key press.
type Code int32

// Control codes. CtrlA through CtrlZ are contiguous.
const (
	None  Code = 0
	CtrlA Code = iota
	CtrlB
	CtrlC
	CtrlD
	CtrlE
	CtrlF
	CtrlG
	CtrlH
	CtrlI
	CtrlJ
	CtrlK
	CtrlL
	CtrlM
	CtrlN
	CtrlO
	CtrlP
	CtrlQ
	CtrlR
	CtrlS
	CtrlT
	CtrlU
	CtrlV
	CtrlW
	CtrlX
	CtrlY
	CtrlZ
	Escape
)

// Character keys with dedicated names.
const (
	Tab       Code = CtrlI
	Newline   Code = CtrlJ
	Enter     Code = CtrlM
	Space     Code = ' '
	Colon     Code = ':'
	Backspace Code = 127
)

// specialBase is the first code used for non-character keys.
const specialBase Code = 0x110000

// Non-character keys.
const (
	Up Code = specialBase + iota
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Insert
	Delete
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

// Rune returns the code for a character key.
func Rune(r rune) Code {
	return Code(r)
}

// Ctrl returns the control code for a letter (case-insensitive).
// Returns None if r is not an ASCII letter.
func Ctrl(r rune) Code {
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		return None
	}
	return CtrlA + Code(r-'a')
}

// IsCtrl returns true for Ctrl+letter codes.
func (c Code) IsCtrl() bool {
	return c >= CtrlA && c <= CtrlZ
}

// IsSpecial returns true for non-character keys (arrows, function keys, ...).
func (c Code) IsSpecial() bool {
	return c >= specialBase
}

// IsPrintable returns true if the code is a printable character.
func (c Code) IsPrintable() bool {
	return c > 0 && c < specialBase && c != Backspace && unicode.IsPrint(rune(c))
}

// IsDigit returns true for the ASCII digits 0-9.
func (c Code) IsDigit() bool {
	return c >= '0' && c <= '9'
}

// IsEnter returns true for both carriage return and line feed.
func (c Code) IsEnter() bool {
	return c == Enter || c == Newline
}

// IsEscape returns true for the escape key.
func (c Code) IsEscape() bool {
	return c == Escape
}

// Rune returns the character for printable codes, or 0.
func (c Code) Rune() rune {
	if !c.IsPrintable() {
		return 0
	}
	return rune(c)
}

var specialNames = map[Code]string{
	Escape:    "Esc",
	Enter:     "CR",
	Newline:   "NL",
	Tab:       "Tab",
	Space:     "Space",
	Backspace: "BS",
	Up:        "Up",
	Down:      "Down",
	Left:      "Left",
	Right:     "Right",
	Home:      "Home",
	End:       "End",
	PageUp:    "PageUp",
	PageDown:  "PageDown",
	Insert:    "Insert",
	Delete:    "Del",
	F1:        "F1",
	F2:        "F2",
	F3:        "F3",
	F4:        "F4",
	F5:        "F5",
	F6:        "F6",
	F7:        "F7",
	F8:        "F8",
	F9:        "F9",
	F10:       "F10",
	F11:       "F11",
	F12:       "F12",
}

// String returns a Vim-style representation.
// Examples: "i", "<C-a>", "<Esc>", "<CR>", "<lt>"
func (c Code) String() string {
	if name, ok := specialNames[c]; ok {
		return "<" + name + ">"
	}
	if c.IsCtrl() {
		return fmt.Sprintf("<C-%c>", 'a'+rune(c-CtrlA))
	}
	if c == '<' {
		return "<lt>"
	}
	if c.IsPrintable() {
		return string(rune(c))
	}
	return fmt.Sprintf("<%d>", int32(c))
}

// Pretty returns the bracketed form used on the status line.
// Examples: "<i>", "<CTRL+a>", "<Esc>"
func (c Code) Pretty() string {
	if c.IsCtrl() {
		return fmt.Sprintf("<CTRL+%c>", 'a'+rune(c-CtrlA))
	}
	if name, ok := specialNames[c]; ok {
		return "<" + name + ">"
	}
	if c.IsPrintable() {
		return "<" + string(rune(c)) + ">"
	}
	return fmt.Sprintf("<%d>", int32(c))
}

// nameMap maps lower-case key names to codes.
var nameMap = map[string]Code{
	"esc":       Escape,
	"escape":    Escape,
	"cr":        Enter,
	"enter":     Enter,
	"return":    Enter,
	"nl":        Newline,
	"tab":       Tab,
	"space":     Space,
	"bs":        Backspace,
	"backspace": Backspace,
	"up":        Up,
	"down":      Down,
	"left":      Left,
	"right":     Right,
	"home":      Home,
	"end":       End,
	"pageup":    PageUp,
	"pgup":      PageUp,
	"pagedown":  PageDown,
	"pgdn":      PageDown,
	"insert":    Insert,
	"ins":       Insert,
	"del":       Delete,
	"delete":    Delete,
	"lt":        '<',
	"gt":        '>',
	"bar":       '|',
	"bslash":    '\\',
	"colon":     Colon,
	"f1":        F1,
	"f2":        F2,
	"f3":        F3,
	"f4":        F4,
	"f5":        F5,
	"f6":        F6,
	"f7":        F7,
	"f8":        F8,
	"f9":        F9,
	"f10":       F10,
	"f11":       F11,
	"f12":       F12,
}

// FromName returns the code for a key name (case-insensitive).
// Returns None if the name is not recognized.
func FromName(name string) Code {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := nameMap[name]; ok {
		return c
	}
	return None
}
