package cursor

import (
	"github.com/cleichner/rotide/internal/dispatcher/execctx"
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/input/keymap"
)

// Handler implements cursor motions and multiplier digits.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// Actions returns the action table for this handler.
func (h *Handler) Actions() keymap.Actions {
	return keymap.Actions{
		keymap.ActionLeft:      h.motion(0, -1),
		keymap.ActionRight:     h.motion(0, 1),
		keymap.ActionUp:        h.motion(-1, 0),
		keymap.ActionDown:      h.motion(1, 0),
		keymap.ActionLineStart: handler.Func(h.LineStart),
		keymap.ActionZero:      handler.Func(h.Zero),
		keymap.ActionDigit:     handler.Func(h.Digit),
	}
}

// motion returns a handler moving by (dRow, dCol) times the multiplier.
func (h *Handler) motion(dRow, dCol int) handler.Func {
	return func(ctx *execctx.Context) handler.Result {
		n := ctx.TakeCount()
		row, col := ctx.Cursor()
		ctx.SetCursor(row+dRow*n, col+dCol*n)
		return handler.Consumed
	}
}

// Move moves the cursor by (dRow, dCol) times the multiplier.
func (h *Handler) Move(ctx *execctx.Context, dRow, dCol int) handler.Result {
	return h.motion(dRow, dCol)(ctx)
}

// LineStart moves to column 0 and drops any multiplier.
func (h *Handler) LineStart(ctx *execctx.Context) handler.Result {
	ctx.Count.Reset()
	row, _ := ctx.Cursor()
	ctx.SetCursor(row, 0)
	return handler.Consumed
}

// Zero extends a pending multiplier, or moves to column 0 when none is
// pending.
func (h *Handler) Zero(ctx *execctx.Context) handler.Result {
	if !ctx.Count.IsEmpty() {
		ctx.Count.Push('0')
		return handler.Consumed
	}
	return h.LineStart(ctx)
}

// Digit appends the dispatched digit to the multiplier.
func (h *Handler) Digit(ctx *execctx.Context) handler.Result {
	if !ctx.Key.IsDigit() {
		return handler.Declined
	}
	return handler.FromBool(ctx.Count.Push(rune(ctx.Key)))
}
