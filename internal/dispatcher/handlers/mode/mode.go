package mode

import (
	"github.com/cleichner/rotide/internal/dispatcher/execctx"
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/input/keymap"
	imode "github.com/cleichner/rotide/internal/input/mode"
)

// Status line texts.
const (
	StatusInsert  = "-- INSERT --"
	StatusWaiting = "-- WAITING --"
)

// Handler implements the mode switching actions.
type Handler struct{}

// NewHandler creates a new mode handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the mode namespace.
func (h *Handler) Namespace() string {
	return "mode"
}

// Actions returns the action table for this handler.
func (h *Handler) Actions() keymap.Actions {
	return keymap.Actions{
		keymap.ActionInsert:      handler.Func(h.Insert),
		keymap.ActionEscape:      handler.Func(h.Escape),
		keymap.ActionCommandLine: handler.Func(h.CommandLine),
	}
}

// Insert enters Insert mode.
func (h *Handler) Insert(ctx *execctx.Context) handler.Result {
	ctx.SetInsertMode(true)
	ctx.SetStatus(StatusInsert)
	return handler.Consumed
}

// Escape returns from Insert to Normal mode. Outside Insert mode it changes
// no mode and declines so a longer binding starting with Esc can still match.
func (h *Handler) Escape(ctx *execctx.Context) handler.Result {
	ctx.SetStatus(StatusWaiting)
	ctx.ResetPending()

	if !ctx.Mode.Is(imode.Insert) {
		return handler.Declined
	}
	ctx.SetInsertMode(false)
	return handler.Consumed
}

// CommandLine opens the command line.
func (h *Handler) CommandLine(ctx *execctx.Context) handler.Result {
	if ctx.InsertMode() {
		return handler.Declined
	}
	ctx.EnterCommandLine()
	return handler.Consumed
}
