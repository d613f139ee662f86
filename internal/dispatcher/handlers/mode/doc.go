// Package mode provides the built-in mode switching bindings.
//
// # Mode Operations
//
//   - mode.insert (i): set the insert flag, enter Insert, show "-- INSERT --"
//   - mode.escape (Esc): show "-- WAITING --" and clear the multiplier and
//     command line; consumed only when the insert flag was set
//   - mode.commandLine (:): enter CommandLine; declined while the insert
//     flag is set so the colon reaches the text
//
// Escape declining when there is nothing to leave is what lets a chain
// such as "<Esc>j" work: the matcher sees the Esc binding decline and
// keeps looking.
//
// # Usage
//
//	h := mode.NewHandler()
//	keymap.Default().Apply(registry, h.Actions())
package mode
