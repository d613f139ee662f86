// Package keymap stores key bindings and resolves key sequences against them.
//
// # Key Concepts
//
// Binding: a key sequence in one mode mapped to a handler. Bindings are
// replaced, never edited; registering the same sequence again in the same
// mode supersedes the old handler and logs a warning.
//
// Registry: one prefix tree per mode. Lookup classifies a pending sequence
// as NoMatch, PartialMatch or ExactMatch. A sequence that is bound and also
// the prefix of a longer binding is an ExactMatch; there is no timeout to
// wait for the longer one.
//
// Keymap: a named list of (mode, keys, action) entries. Actions are names
// resolved through an Actions table, so a file can rebind built-ins:
//
//	name: mine
//	bindings:
//	  normal:
//	    "<C-s>": mode.escape
//	    "x": ""          # remove the binding for x
//
// The same structure is accepted as TOML:
//
//	[bindings.insert]
//	"<C-c>" = "mode.escape"
//
// # Key Sequence Notation
//
//	"j"          - single character
//	"<C-a><C-b>" - Ctrl+A then Ctrl+B
//	"<Esc>j"     - Escape then j
//	"Esc j"      - space separated form of the same
package keymap
