package input

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cleichner/rotide/internal/dispatcher"
	"github.com/cleichner/rotide/internal/dispatcher/execctx"
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/host"
	"github.com/cleichner/rotide/internal/input/key"
	"github.com/cleichner/rotide/internal/input/keymap"
	"github.com/cleichner/rotide/internal/input/mode"
)

// Handler is the entry point for key input. It matches keys against the
// bindings of the active mode, runs the command line in CommandLine mode
// and owns the dispatch context handlers see.
//
// Handler is not safe for concurrent use; feed it from one goroutine.
type Handler struct {
	config Config

	ctx      *execctx.Context
	registry *keymap.Registry
	commands *dispatcher.Dispatcher
	actions  keymap.Actions

	// keymaps applied since the last reset, defaults first.
	keymaps []*keymap.Keymap

	// pending holds the keys of an unresolved sequence in the active mode.
	pending key.Sequence

	hooks   *HookManager
	metrics *Metrics
	logger  Logger
}

// NewHandler creates a handler writing to surface.
func NewHandler(config Config, surface host.Surface) *Handler {
	initial := config.InitialMode
	if !initial.IsValid() {
		initial = mode.Normal
	}

	dcfg := dispatcher.DefaultConfig().WithReportUnknown(config.ReportUnknownCommands)
	if config.EnableMetrics {
		dcfg = dcfg.WithMetrics()
	}

	h := &Handler{
		config:   config,
		ctx:      execctx.NewIn(initial, surface),
		registry: keymap.NewRegistry(),
		commands: dispatcher.New(dcfg),
		actions:  keymap.Actions{},
		hooks:    NewHookManager(),
	}
	if config.EnableMetrics {
		h.metrics = NewMetrics()
	}

	// Pending keys belong to the mode they were typed in.
	h.ctx.Mode.OnChange(func(_, _ mode.Mode) {
		h.pending = nil
	})

	if config.Builtins {
		h.installBuiltins()
	}
	return h
}

// SetLogger sets the logger for the handler, its registry and dispatcher.
func (h *Handler) SetLogger(l Logger) {
	h.logger = l
	h.registry.SetLogger(l)
	h.commands.SetLogger(l)
}

// HandleKey processes one key.
func (h *Handler) HandleKey(c key.Code) Outcome {
	start := time.Now()

	if h.hooks.RunPreKey(c, h.ctx) {
		if h.metrics != nil {
			h.metrics.RecordHookConsumption()
		}
		return Outcome{Result: handler.Consumed, Status: Handled}
	}

	var out Outcome
	if h.ctx.Mode.Is(mode.CommandLine) {
		out = h.commandLineKey(c)
	} else {
		out = h.match(c, true)
	}

	h.hooks.RunPostKey(c, out, h.ctx)
	if h.metrics != nil {
		h.metrics.RecordKey(out, time.Since(start))
	}
	return out
}

// match appends c to the pending sequence and resolves it.
// With retry set, a broken or declined chain retries c on its own.
func (h *Handler) match(c key.Code, retry bool) Outcome {
	seq := h.pending.Append(c)
	m := h.registry.Lookup(h.ctx.Mode.Current(), seq)

	switch m.Kind {
	case keymap.ExactMatch:
		h.pending = nil
		if h.invoke(m.Binding, seq) == handler.Consumed {
			return Outcome{Result: handler.Consumed, Status: Handled}
		}
		// A declined binding that prefixes longer ones stays pending so
		// chains such as <Esc>j still match.
		if m.Longer && h.ctx.Mode.Is(m.Binding.Mode) {
			h.pending = seq
			return Outcome{Result: handler.Declined, Status: Pending}
		}
		if retry && seq.Len() > 1 {
			return h.retry(c, Declined)
		}
		return Outcome{Result: handler.Declined, Status: Declined}

	case keymap.PartialMatch:
		h.pending = seq
		return Outcome{Result: handler.Consumed, Status: Pending}

	default:
		h.pending = nil
		if retry && seq.Len() > 1 {
			return h.retry(c, Unmatched)
		}
		return Outcome{Result: handler.Declined, Status: Unmatched}
	}
}

// retry runs c as a fresh sequence after a chain failed. Only a handled
// or pending retry changes the reported status.
func (h *Handler) retry(c key.Code, failed Status) Outcome {
	if h.metrics != nil {
		h.metrics.RecordRetry()
	}
	out := h.match(c, false)
	if out.Status == Handled || out.Status == Pending {
		return out
	}
	return Outcome{Result: handler.Declined, Status: failed}
}

// invoke runs a binding. A panicking handler is logged and declines.
func (h *Handler) invoke(b *keymap.Binding, seq key.Sequence) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			if h.logger != nil {
				h.logger.Warn("binding %s panicked: %v\n%s", b, r, string(stack[:n]))
			}
			result = handler.Declined
		}
	}()

	h.ctx.WithKey(seq)
	return b.Handler.Handle(h.ctx)
}

// commandLineKey edits the command line. A single-key binding registered
// for CommandLine mode runs first and wins if it consumes the key.
func (h *Handler) commandLineKey(c key.Code) Outcome {
	seq := key.NewSequence(c)
	if m := h.registry.Lookup(mode.CommandLine, seq); m.IsExact() {
		if h.invoke(m.Binding, seq) == handler.Consumed {
			return Outcome{Result: handler.Consumed, Status: Handled}
		}
		if !h.ctx.Mode.Is(mode.CommandLine) {
			return Outcome{Result: handler.Declined, Status: Declined}
		}
	}

	line := h.ctx.Line
	changed := true
	switch {
	case c.IsEscape():
		h.cancelCommandLine()
		return Outcome{Result: handler.Consumed, Status: CommandLine}
	case c.IsEnter():
		h.Submit(line.String())
		return Outcome{Result: handler.Consumed, Status: CommandLine}
	case c == key.Backspace || c == key.CtrlH:
		if line.IsEmpty() {
			h.cancelCommandLine()
			return Outcome{Result: handler.Consumed, Status: CommandLine}
		}
		line.Backspace()
	case c == key.Delete:
		changed = line.Delete()
	case c == key.Left:
		changed = line.MoveLeft()
	case c == key.Right:
		changed = line.MoveRight()
	case c == key.Home || c == key.CtrlB:
		line.MoveToStart()
	case c == key.End || c == key.CtrlE:
		line.MoveToEnd()
	case c == key.Up:
		changed = line.HistoryPrev()
	case c == key.Down:
		changed = line.HistoryNext()
	case c.IsPrintable():
		changed = line.Insert(c.Rune())
	default:
		return Outcome{Result: handler.Declined, Status: CommandLine}
	}

	if changed {
		h.ctx.SetStatus(line.Display())
	}
	return Outcome{Result: handler.Consumed, Status: CommandLine}
}

func (h *Handler) cancelCommandLine() {
	h.ctx.LeaveCommandLine()
	h.ctx.SetStatus("")
}

// Submit dispatches text as if it had been typed on the command line.
// The command line, if open, is closed first.
func (h *Handler) Submit(text string) dispatcher.Outcome {
	if h.ctx.Mode.Is(mode.CommandLine) {
		h.ctx.LeaveCommandLine()
	}
	h.ctx.Line.Reset()
	if strings.TrimSpace(text) == "" {
		h.ctx.SetStatus("")
	}
	return h.commands.Dispatch(h.ctx, text)
}

// Bind registers a key binding. Registering an existing sequence replaces
// its handler.
func (h *Handler) Bind(m mode.Mode, seq key.Sequence, name string, fn handler.Handler) error {
	if _, err := h.registry.Register(m, seq, name, fn); err != nil {
		return fmt.Errorf("bind %s %s: %w", m, seq, err)
	}
	return nil
}

// BindFunc is Bind for a plain function.
func (h *Handler) BindFunc(m mode.Mode, keys string, fn handler.Func) error {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return fmt.Errorf("bind %s %q: %w", m, keys, err)
	}
	return h.Bind(m, seq, keys, fn)
}

// Unbind removes a key binding.
func (h *Handler) Unbind(m mode.Mode, seq key.Sequence) bool {
	return h.registry.Unregister(m, seq)
}

// OnCommand appends a command handler and returns its id.
func (h *Handler) OnCommand(fn handler.CommandHandler) (uuid.UUID, error) {
	id, err := h.commands.Register(fn)
	if err != nil {
		return uuid.Nil, fmt.Errorf("on command: %w", err)
	}
	return id, nil
}

// RemoveCommand removes a command handler by id.
func (h *Handler) RemoveCommand(id uuid.UUID) bool {
	return h.commands.Remove(id)
}

// RegisterActions adds named actions that keymaps may refer to.
func (h *Handler) RegisterActions(actions keymap.Actions) {
	h.actions.Merge(actions)
}

// Actions returns a copy of the action table.
func (h *Handler) Actions() keymap.Actions {
	return keymap.Actions{}.Merge(h.actions)
}

// ApplyKeymap binds every entry of km through Bind.
func (h *Handler) ApplyKeymap(km *keymap.Keymap) error {
	if err := km.Apply(h, h.actions); err != nil {
		return err
	}
	h.keymaps = append(h.keymaps, km)
	return nil
}

// Restore puts back the keymap binding for seq in mode m, replacing
// whatever is bound there now. Without a keymap entry the sequence is
// unbound. It reports whether a keymap binding was restored.
func (h *Handler) Restore(m mode.Mode, seq key.Sequence) bool {
	for i := len(h.keymaps) - 1; i >= 0; i-- {
		e, ok := h.keymaps[i].Lookup(m, seq)
		if !ok {
			continue
		}
		if fn, found := h.actions[e.Action]; found && e.Action != "" {
			if err := h.Bind(m, seq, e.Action, fn); err == nil {
				return true
			}
		}
		break
	}
	h.registry.Unregister(m, seq)
	return false
}

// ResetBindings drops every key binding and pending key, then applies the
// default keymap (when builtins are enabled) followed by keymaps in order.
// Registered actions and commands are kept.
func (h *Handler) ResetBindings(keymaps ...*keymap.Keymap) error {
	h.pending = nil
	h.registry.Clear()
	h.keymaps = nil
	if h.config.Builtins {
		if err := h.ApplyKeymap(keymap.Default()); err != nil {
			return fmt.Errorf("default keymap: %w", err)
		}
	}
	for _, km := range keymaps {
		if err := h.ApplyKeymap(km); err != nil {
			return err
		}
	}
	return nil
}

// AddHook registers a hook.
func (h *Handler) AddHook(hook Hook, name string, priority HookPriority) HookID {
	return h.hooks.Register(hook, name, priority)
}

// Hooks returns the hook manager.
func (h *Handler) Hooks() *HookManager {
	return h.hooks
}

// Context returns the dispatch context.
func (h *Handler) Context() *execctx.Context {
	return h.ctx
}

// Registry returns the binding registry.
func (h *Handler) Registry() *keymap.Registry {
	return h.registry
}

// Commands returns the command dispatcher.
func (h *Handler) Commands() *dispatcher.Dispatcher {
	return h.commands
}

// Mode returns the active mode.
func (h *Handler) Mode() mode.Mode {
	return h.ctx.Mode.Current()
}

// Pending returns a copy of the unresolved key sequence.
func (h *Handler) Pending() key.Sequence {
	return h.pending.Clone()
}

// ClearPending drops the unresolved key sequence.
func (h *Handler) ClearPending() {
	h.pending = nil
}

// QuitRequested reports whether a handler asked to quit.
func (h *Handler) QuitRequested() bool {
	return h.ctx.QuitRequested()
}

// Metrics returns the key metrics (nil if disabled).
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// CommandMetrics returns the command metrics (nil if disabled).
func (h *Handler) CommandMetrics() *dispatcher.Metrics {
	return h.commands.Metrics()
}
