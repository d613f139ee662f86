// Package cmdline holds the state of the ':' command line: the text being
// edited, the history of submitted lines and the parser that splits a line
// into a command name and its arguments.
//
// The buffer is active only while the editor is in command-line mode. It is
// cleared on submit and on cancel. History is append-only; every submitted
// non-empty line is recorded, whether or not a handler accepted it.
//
// Parsing is deliberately simple: the line is split on runs of whitespace,
// the first field is the name and the rest are arguments. There is no
// quoting or escaping.
//
//	name, args := cmdline.Parse("test a b") // "test", ["a" "b"]
package cmdline
