package dispatcher

import "github.com/cleichner/rotide/internal/dispatcher/execctx"

// PreDispatchHook is called before a command line is dispatched.
// Returning false cancels the dispatch; the line stays in history.
type PreDispatchHook interface {
	PreDispatch(ctx *execctx.Context, line Line) bool
}

// PostDispatchHook is called after a command line is dispatched.
type PostDispatchHook interface {
	PostDispatch(ctx *execctx.Context, line Line, outcome Outcome)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(ctx *execctx.Context, line Line) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(ctx *execctx.Context, line Line) bool {
	return f(ctx, line)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(ctx *execctx.Context, line Line, outcome Outcome)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(ctx *execctx.Context, line Line, outcome Outcome) {
	f(ctx, line, outcome)
}

// LoggingHook logs every dispatched line at debug level.
type LoggingHook struct {
	Logger Logger
}

// PostDispatch implements PostDispatchHook.
func (h LoggingHook) PostDispatch(_ *execctx.Context, line Line, outcome Outcome) {
	if h.Logger != nil {
		h.Logger.Debug("command %q -> %s", line.Raw, outcome)
	}
}
