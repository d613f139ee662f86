// Package host defines the side channels the input core writes to: a status
// line, a cursor position and an annotation call used by scripts.
//
// Buffer rendering and text storage live outside this module. A Surface is
// the whole contract between the dispatch core and whatever draws the screen.
package host

// Surface is the host-facing output of key and command handlers.
type Surface interface {
	// Status returns the current status line text.
	Status() string

	// SetStatus replaces the status line text.
	SetStatus(text string)

	// Cursor returns the cursor position (zero-based).
	Cursor() (row, col int)

	// SetCursor moves the cursor. Implementations may clamp.
	SetCursor(row, col int)

	// Annotate places text at a screen position. It is opaque to the core.
	Annotate(row, col int, text string)
}

// Bounded is implemented by surfaces with a known size.
// Cursor motions clamp to it when available.
type Bounded interface {
	Size() (rows, cols int)
}

// Annotation is a recorded Annotate call.
type Annotation struct {
	Row  int
	Col  int
	Text string
}
