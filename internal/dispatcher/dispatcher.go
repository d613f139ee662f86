package dispatcher

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cleichner/rotide/internal/dispatcher/execctx"
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/input/cmdline"
)

// UnknownCommandFormat is the status shown when no handler accepts a line.
const UnknownCommandFormat = "Not an editor command: %s"

// Outcome is the result of dispatching one command line.
type Outcome uint8

const (
	// Accepted means a handler accepted the line.
	Accepted Outcome = iota
	// Unrecognized means every handler declined.
	Unrecognized
	// Empty means the line held no command; nothing ran.
	Empty
	// Cancelled means a pre-dispatch hook stopped the line.
	Cancelled
)

// String returns a string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Unrecognized:
		return "unrecognized"
	case Empty:
		return "empty"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Line is a parsed command line.
type Line struct {
	Raw  string
	Name string
	Args []string
}

// Logger is the logging surface the dispatcher needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type entry struct {
	id uuid.UUID
	h  handler.CommandHandler
}

// Dispatcher holds the ordered list of command handlers.
// It is not safe for concurrent use.
type Dispatcher struct {
	entries []entry

	config  Config
	metrics *Metrics
	logger  Logger

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{config: config}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetLogger sets the logger. A nil logger disables logging.
func (d *Dispatcher) SetLogger(l Logger) {
	d.logger = l
}

// Register appends a handler and returns its id.
// Handlers run in registration order.
func (d *Dispatcher) Register(h handler.CommandHandler) (uuid.UUID, error) {
	if h == nil {
		return uuid.Nil, ErrNilHandler
	}
	if f, ok := h.(handler.CommandFunc); ok && f == nil {
		return uuid.Nil, ErrNilHandler
	}
	id := uuid.New()
	d.entries = append(d.entries, entry{id: id, h: h})
	return id, nil
}

// RegisterFunc registers a handler function.
func (d *Dispatcher) RegisterFunc(fn handler.CommandFunc) (uuid.UUID, error) {
	if fn == nil {
		return uuid.Nil, ErrNilHandler
	}
	return d.Register(fn)
}

// Remove unregisters the handler with the given id.
func (d *Dispatcher) Remove(id uuid.UUID) bool {
	for i, e := range d.entries {
		if e.id == id {
			d.entries = append(d.entries[:i:i], d.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (d *Dispatcher) Len() int {
	return len(d.entries)
}

// IDs returns the handler ids in dispatch order.
func (d *Dispatcher) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(d.entries))
	for i, e := range d.entries {
		ids[i] = e.id
	}
	return ids
}

// Dispatch records raw in history and runs it against the handlers.
// A blank line is neither recorded nor dispatched.
func (d *Dispatcher) Dispatch(ctx *execctx.Context, raw string) Outcome {
	if strings.TrimSpace(raw) == "" {
		return Empty
	}
	if ctx.History != nil {
		ctx.History.Add(raw)
	}

	name, args := cmdline.Parse(raw)
	if name == "" {
		return Empty
	}
	line := Line{Raw: raw, Name: name, Args: args}

	if !d.runPreHooks(ctx, line) {
		d.runPostHooks(ctx, line, Cancelled)
		return Cancelled
	}

	start := time.Now()
	outcome := Unrecognized

	// Snapshot so handlers may register or remove handlers.
	entries := make([]entry, len(d.entries))
	copy(entries, d.entries)

	for _, e := range entries {
		var r handler.Result
		if d.config.RecoverFromPanic {
			r = d.executeWithRecovery(e.h, ctx, line)
		} else {
			r = e.h.HandleCommand(ctx, line.Name, line.Args)
		}
		if r == handler.Accepted {
			outcome = Accepted
			break
		}
	}

	if outcome == Unrecognized {
		if d.config.ReportUnknown {
			ctx.SetStatus(fmt.Sprintf(UnknownCommandFormat, raw))
		}
		if d.logger != nil {
			d.logger.Debug("unrecognized command: %s", raw)
		}
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(line.Name, time.Since(start), outcome)
	}
	d.runPostHooks(ctx, line, outcome)
	return outcome
}

// executeWithRecovery runs a handler, treating a panic as Declined.
func (d *Dispatcher) executeWithRecovery(h handler.CommandHandler, ctx *execctx.Context, line Line) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			if d.logger != nil {
				d.logger.Warn("%v: command %s: %v\n%s", ErrPanic, line.Name, r, string(stack[:n]))
			}
			if d.metrics != nil {
				d.metrics.RecordPanic(line.Name)
			}
			result = handler.Declined
		}
	}()

	return h.HandleCommand(ctx, line.Name, line.Args)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.postHooks = append(d.postHooks, hook)
}

func (d *Dispatcher) runPreHooks(ctx *execctx.Context, line Line) bool {
	for _, h := range d.preHooks {
		if !h.PreDispatch(ctx, line) {
			return false
		}
	}
	return true
}

func (d *Dispatcher) runPostHooks(ctx *execctx.Context, line Line, outcome Outcome) {
	for _, h := range d.postHooks {
		h.PostDispatch(ctx, line, outcome)
	}
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
