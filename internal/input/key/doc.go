// Package key provides key codes and key sequences for the input system.
//
// A key press is represented as a single Code. Printable characters are
// their Unicode code point, Ctrl+letter combinations are the control codes
// 1 through 26 (distinct from the letters themselves), and non-character
// keys such as arrows are encoded above the Unicode range so they never
// collide with a rune.
//
// # Key Specifications
//
// Key specifications use Vim-style notation:
//
//   - Simple keys: "i", "0", ":"
//   - Control keys: "<C-a>", "<Ctrl-b>"
//   - Special keys: "<Esc>", "<CR>", "<BS>", "<Up>", "<Space>"
//
// # Key Sequences
//
// Multi-key sequences like "<C-a><C-b>" or "<Esc>j" are represented as
// Sequence values. The registry matches sequences by exact equality and by
// prefix while keys are still arriving.
package key
