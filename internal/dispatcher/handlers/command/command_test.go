package command

import (
	"testing"

	"github.com/cleichner/rotide/internal/dispatcher"
	"github.com/cleichner/rotide/internal/dispatcher/execctx"
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/host"
	"github.com/cleichner/rotide/internal/input/key"
	"github.com/cleichner/rotide/internal/input/keymap"
	"github.com/cleichner/rotide/internal/input/mode"
)

func setup(t *testing.T) (*dispatcher.Dispatcher, *execctx.Context, *host.Memory) {
	t.Helper()
	reg := keymap.NewRegistry()
	for _, s := range []string{"h", "j", "k"} {
		if _, err := reg.Register(mode.Normal, key.MustParseSequence(s), s, handler.Func(func(*execctx.Context) handler.Result {
			return handler.Consumed
		})); err != nil {
			t.Fatal(err)
		}
	}

	d := dispatcher.NewWithDefaults()
	for _, cmd := range NewHandler(reg).Commands() {
		if _, err := d.RegisterFunc(cmd); err != nil {
			t.Fatal(err)
		}
	}
	surface := host.NewMemory()
	return d, execctx.New(surface), surface
}

func TestCommands(t *testing.T) {
	tests := []struct {
		line   string
		want   dispatcher.Outcome
		status string
		quit   bool
	}{
		{"echo hello   world", dispatcher.Accepted, "hello world", false},
		{"echo", dispatcher.Accepted, "", false},
		{"bindings", dispatcher.Accepted, "normal: 3 bindings", false},
		{"bindings insert", dispatcher.Accepted, "insert: 0 bindings", false},
		{"bindings visual", dispatcher.Accepted, "Unknown mode: visual", false},
		{"q", dispatcher.Accepted, "", true},
		{"quit", dispatcher.Accepted, "", true},
		{"quit now", dispatcher.Unrecognized, "Not an editor command: quit now", false},
		{"wq", dispatcher.Unrecognized, "Not an editor command: wq", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			d, ctx, surface := setup(t)
			if got := d.Dispatch(ctx, tt.line); got != tt.want {
				t.Errorf("Dispatch() = %v, want %v", got, tt.want)
			}
			if surface.Status() != tt.status {
				t.Errorf("status = %q, want %q", surface.Status(), tt.status)
			}
			if ctx.QuitRequested() != tt.quit {
				t.Errorf("QuitRequested() = %v", ctx.QuitRequested())
			}
		})
	}
}

func TestHistoryCommand(t *testing.T) {
	d, ctx, surface := setup(t)

	d.Dispatch(ctx, "history")
	if surface.Status() != "history: 1" {
		t.Errorf("status = %q", surface.Status())
	}

	d.Dispatch(ctx, "hello")
	d.Dispatch(ctx, "history")
	if surface.Status() != "history: 3, previous: hello" {
		t.Errorf("status = %q", surface.Status())
	}
}

func TestCommandsWithoutRegistry(t *testing.T) {
	if n := len(NewHandler(nil).Commands()); n != 4 {
		t.Errorf("Commands() = %d handlers, want 4", n)
	}
}
