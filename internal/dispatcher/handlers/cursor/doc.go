// Package cursor provides the built-in motions and the numeric multiplier
// bindings.
//
// Motions move the host cursor by the multiplier (1 when none was typed)
// and consume it. The cursor never goes below row or column 0, and is
// clamped to the surface size when the surface reports one.
//
// The "0" key is overloaded as in Vim: with digits pending it extends the
// multiplier ("10j"), otherwise it moves to column 0.
package cursor
