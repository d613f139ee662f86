// Package mode provides the modal input state machine.
//
// Exactly one of three modes is active at any instant:
//   - Normal: navigation, multipliers and commands (initial mode)
//   - Insert: text entry
//   - CommandLine: ex-style command entry after ":"
//
// # Transitions
//
//	         i             :
//	Insert ◀──── Normal ────▶ CommandLine
//	       ────▶        ◀────
//	        Esc       submit / Esc
//
// The Controller only records the active mode and notifies listeners. The
// decision to transition is made by key binding handlers, which switch modes
// through the dispatch context.
package mode
