// Package handler provides the handler interfaces and result type for key
// and command dispatch.
package handler

import "github.com/cleichner/rotide/internal/dispatcher/execctx"

// Handler runs when a key binding matches.
type Handler interface {
	Handle(ctx *execctx.Context) Result
}

// Func is a function adapter for Handler.
type Func func(ctx *execctx.Context) Result

// Handle implements Handler. A nil Func declines.
func (f Func) Handle(ctx *execctx.Context) Result {
	if f == nil {
		return Declined
	}
	return f(ctx)
}

// Consume wraps an action that always succeeds.
func Consume(fn func(ctx *execctx.Context)) Func {
	return func(ctx *execctx.Context) Result {
		fn(ctx)
		return Consumed
	}
}

// CommandHandler runs for a submitted command line. It returns Accepted
// to stop dispatch or Declined to let the next handler try.
type CommandHandler interface {
	HandleCommand(ctx *execctx.Context, name string, args []string) Result
}

// CommandFunc is a function adapter for CommandHandler.
type CommandFunc func(ctx *execctx.Context, name string, args []string) Result

// HandleCommand implements CommandHandler. A nil CommandFunc declines.
func (f CommandFunc) HandleCommand(ctx *execctx.Context, name string, args []string) Result {
	if f == nil {
		return Declined
	}
	return f(ctx, name, args)
}

// Named wraps fn so it only sees commands called name.
func Named(name string, fn CommandFunc) CommandFunc {
	return func(ctx *execctx.Context, got string, args []string) Result {
		if got != name {
			return Declined
		}
		return fn(ctx, got, args)
	}
}
