// Package input turns key presses into editor behavior.
//
// A Handler owns the dispatch context, the per-mode binding registry and
// the command dispatcher. Each key is appended to the pending sequence of
// the active mode and classified against the registry:
//
//   - an exact match runs the bound handler
//   - a partial match keeps the sequence pending
//   - a miss clears the sequence, and a broken chain retries its last key
//
// A binding that declines while longer bindings extend it stays pending,
// so chains such as "<Esc>j" still resolve after Escape declines.
//
// In CommandLine mode keys edit the command line instead. Enter submits
// the line to the command dispatcher; Escape cancels it.
//
// Scripts and the built-in keymap register through the same Bind and
// OnCommand calls.
package input
