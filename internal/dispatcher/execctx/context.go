// Package execctx provides the dispatch context passed to every key and
// command handler.
package execctx

import (
	"github.com/cleichner/rotide/internal/host"
	"github.com/cleichner/rotide/internal/input/cmdline"
	"github.com/cleichner/rotide/internal/input/count"
	"github.com/cleichner/rotide/internal/input/key"
	"github.com/cleichner/rotide/internal/input/mode"
)

// Context holds the editor state a handler may read and change.
// One Context lives for the whole session; it is not safe for
// concurrent use.
type Context struct {
	// Mode is the active editing mode.
	Mode *mode.Controller

	// Count is the pending numeric multiplier.
	Count *count.Multiplier

	// Line is the command-line buffer, active only in CommandLine mode.
	Line *cmdline.Buffer

	// History holds every submitted command line.
	History *cmdline.History

	// Surface receives status, cursor and annotation updates.
	Surface host.Surface

	// Sequence is the key sequence being dispatched; Key is its last code.
	Sequence key.Sequence
	Key      key.Code

	quit bool
}

// New creates a context in Normal mode writing to surface.
// Entering Insert or CommandLine clears the multiplier, and leaving
// CommandLine clears the command-line buffer.
func New(surface host.Surface) *Context {
	return NewIn(mode.Normal, surface)
}

// NewIn is like New but starts in the given mode.
func NewIn(initial mode.Mode, surface host.Surface) *Context {
	h := cmdline.NewHistory()
	ctx := &Context{
		Mode:    mode.NewControllerIn(initial),
		Count:   count.New(),
		Line:    cmdline.NewBuffer(h),
		History: h,
		Surface: surface,
	}
	ctx.Mode.OnChange(func(from, to mode.Mode) {
		if to == mode.Insert || to == mode.CommandLine {
			ctx.Count.Reset()
		}
		if from == mode.CommandLine {
			ctx.Line.Reset()
		}
	})
	return ctx
}

// WithKey returns the context with the dispatched sequence set.
func (ctx *Context) WithKey(seq key.Sequence) *Context {
	ctx.Sequence = seq
	ctx.Key = seq.Last()
	return ctx
}

// Status returns the status line text.
func (ctx *Context) Status() string {
	if ctx.Surface == nil {
		return ""
	}
	return ctx.Surface.Status()
}

// SetStatus replaces the status line text.
func (ctx *Context) SetStatus(text string) {
	if ctx.Surface != nil {
		ctx.Surface.SetStatus(text)
	}
}

// Cursor returns the host cursor position.
func (ctx *Context) Cursor() (row, col int) {
	if ctx.Surface == nil {
		return 0, 0
	}
	return ctx.Surface.Cursor()
}

// SetCursor moves the host cursor, clamped to zero and to the surface
// size when the surface is bounded.
func (ctx *Context) SetCursor(row, col int) {
	if ctx.Surface == nil {
		return
	}
	row, col = max(row, 0), max(col, 0)
	if b, ok := ctx.Surface.(host.Bounded); ok {
		if rows, cols := b.Size(); rows > 0 && cols > 0 {
			row, col = min(row, rows-1), min(col, cols-1)
		}
	}
	ctx.Surface.SetCursor(row, col)
}

// Annotate places text on the surface at (row, col).
func (ctx *Context) Annotate(row, col int, text string) {
	if ctx.Surface != nil {
		ctx.Surface.Annotate(row, col, text)
	}
}

// InsertMode reports whether Insert mode is active.
func (ctx *Context) InsertMode() bool {
	return ctx.Mode.Is(mode.Insert)
}

// SetInsertMode enters Insert mode, closing the command line first, or
// returns from Insert to Normal. Clearing the flag outside Insert mode
// changes nothing.
func (ctx *Context) SetInsertMode(on bool) {
	switch {
	case on && !ctx.Mode.Is(mode.Insert):
		if ctx.Mode.Is(mode.CommandLine) {
			ctx.LeaveCommandLine()
		}
		ctx.Mode.Switch(mode.Insert)
	case !on && ctx.Mode.Is(mode.Insert):
		ctx.Mode.Switch(mode.Normal)
	}
}

// TakeCount returns the multiplier value (1 if empty) and clears it.
func (ctx *Context) TakeCount() int {
	if ctx.Count == nil {
		return 1
	}
	return ctx.Count.Take()
}

// EnterCommandLine switches to CommandLine mode with an empty buffer.
func (ctx *Context) EnterCommandLine() {
	ctx.Line.Reset()
	ctx.Mode.Switch(mode.CommandLine)
	ctx.SetStatus(ctx.Line.Display())
}

// LeaveCommandLine clears the buffer and returns to Normal mode.
func (ctx *Context) LeaveCommandLine() {
	ctx.Line.Reset()
	ctx.Mode.Switch(mode.Normal)
}

// ResetPending clears the multiplier and any command-line state.
func (ctx *Context) ResetPending() {
	ctx.Count.Reset()
	if ctx.Mode.Is(mode.CommandLine) {
		ctx.LeaveCommandLine()
		return
	}
	ctx.Line.Reset()
}

// RequestQuit asks the application to exit after the current event.
func (ctx *Context) RequestQuit() {
	ctx.quit = true
}

// QuitRequested reports whether RequestQuit was called.
func (ctx *Context) QuitRequested() bool {
	return ctx.quit
}

// Validate checks that the context has all required components.
func (ctx *Context) Validate() error {
	switch {
	case ctx.Surface == nil:
		return ErrMissingSurface
	case ctx.Mode == nil:
		return ErrMissingMode
	case ctx.Count == nil:
		return ErrMissingCount
	case ctx.Line == nil || ctx.History == nil:
		return ErrMissingCommandLine
	}
	return nil
}
