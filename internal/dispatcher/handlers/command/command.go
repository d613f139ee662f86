// Package command provides the built-in ':' commands.
package command

import (
	"fmt"
	"strings"

	"github.com/cleichner/rotide/internal/dispatcher/execctx"
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/input/keymap"
	"github.com/cleichner/rotide/internal/input/mode"
)

// Command names.
const (
	CommandQuit      = "quit"
	CommandQuitShort = "q"
	CommandEcho      = "echo"
	CommandHistory   = "history"
	CommandBindings  = "bindings"
)

// BindingLister lists the bindings of a mode.
type BindingLister interface {
	Bindings(m mode.Mode) []*keymap.Binding
}

// Handler implements the built-in commands.
type Handler struct {
	bindings BindingLister
}

// NewHandler creates a command handler. bindings may be nil, in which
// case the bindings command is not offered.
func NewHandler(bindings BindingLister) *Handler {
	return &Handler{bindings: bindings}
}

// Commands returns the built-in command handlers in registration order.
func (h *Handler) Commands() []handler.CommandFunc {
	cmds := []handler.CommandFunc{
		handler.Named(CommandQuit, h.Quit),
		handler.Named(CommandQuitShort, h.Quit),
		handler.Named(CommandEcho, h.Echo),
		handler.Named(CommandHistory, h.History),
	}
	if h.bindings != nil {
		cmds = append(cmds, handler.Named(CommandBindings, h.Bindings))
	}
	return cmds
}

// Quit requests application exit. Arguments are not accepted.
func (h *Handler) Quit(ctx *execctx.Context, _ string, args []string) handler.Result {
	if len(args) > 0 {
		return handler.Declined
	}
	ctx.RequestQuit()
	return handler.Accepted
}

// Echo shows its arguments on the status line.
func (h *Handler) Echo(ctx *execctx.Context, _ string, args []string) handler.Result {
	ctx.SetStatus(strings.Join(args, " "))
	return handler.Accepted
}

// History shows the history length and the line before this one.
func (h *Handler) History(ctx *execctx.Context, _ string, _ []string) handler.Result {
	n := ctx.History.Len()
	status := fmt.Sprintf("history: %d", n)
	if prev, ok := ctx.History.At(n - 2); ok {
		status += ", previous: " + prev
	}
	ctx.SetStatus(status)
	return handler.Accepted
}

// Bindings shows how many bindings a mode has (Normal by default).
func (h *Handler) Bindings(ctx *execctx.Context, _ string, args []string) handler.Result {
	m := mode.Normal
	if len(args) > 0 {
		var err error
		if m, err = mode.Parse(args[0]); err != nil {
			ctx.SetStatus(fmt.Sprintf("Unknown mode: %s", args[0]))
			return handler.Accepted
		}
	}
	ctx.SetStatus(fmt.Sprintf("%s: %d bindings", m, len(h.bindings.Bindings(m))))
	return handler.Accepted
}
