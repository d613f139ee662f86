package mode

import (
	"testing"

	"github.com/cleichner/rotide/internal/dispatcher/execctx"
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/host"
	"github.com/cleichner/rotide/internal/input/keymap"
	imode "github.com/cleichner/rotide/internal/input/mode"
)

func newContext() (*execctx.Context, *host.Memory) {
	surface := host.NewMemory()
	return execctx.New(surface), surface
}

func TestInsert(t *testing.T) {
	ctx, surface := newContext()
	ctx.Count.Push('3')

	if got := NewHandler().Insert(ctx); got != handler.Consumed {
		t.Fatalf("Insert() = %v", got)
	}
	if !ctx.InsertMode() || !ctx.Mode.Is(imode.Insert) {
		t.Error("Insert() should set the flag and mode")
	}
	if surface.Status() != StatusInsert {
		t.Errorf("status = %q", surface.Status())
	}
	if !ctx.Count.IsEmpty() {
		t.Error("entering insert should clear the multiplier")
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name   string
		insert bool
		want   handler.Result
	}{
		{"from insert", true, handler.Consumed},
		{"from normal", false, handler.Declined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, surface := newContext()
			h := NewHandler()
			if tt.insert {
				h.Insert(ctx)
			}
			ctx.Count.Push('4')

			if got := h.Escape(ctx); got != tt.want {
				t.Errorf("Escape() = %v, want %v", got, tt.want)
			}
			if surface.Status() != StatusWaiting {
				t.Errorf("status = %q", surface.Status())
			}
			if ctx.InsertMode() || !ctx.Mode.Is(imode.Normal) {
				t.Error("Escape() should leave normal mode with the flag clear")
			}
			if !ctx.Count.IsEmpty() {
				t.Error("Escape() should clear the multiplier")
			}
		})
	}
}

func TestEscapeFromSwitchedInsertMode(t *testing.T) {
	ctx, _ := newContext()
	ctx.Mode.Switch(imode.Insert)

	if got := NewHandler().Escape(ctx); got != handler.Consumed {
		t.Errorf("Escape() = %v, want consumed", got)
	}
	if !ctx.Mode.Is(imode.Normal) || ctx.InsertMode() {
		t.Error("escape should return to normal whenever insert mode is active")
	}
}

func TestEscapeTwiceDeclinesBoth(t *testing.T) {
	ctx, _ := newContext()
	h := NewHandler()
	for i := 0; i < 2; i++ {
		if got := h.Escape(ctx); got != handler.Declined {
			t.Errorf("escape %d = %v", i, got)
		}
	}
}

func TestCommandLine(t *testing.T) {
	ctx, surface := newContext()
	h := NewHandler()

	if got := h.CommandLine(ctx); got != handler.Consumed {
		t.Fatalf("CommandLine() = %v", got)
	}
	if !ctx.Mode.Is(imode.CommandLine) || surface.Status() != ":" {
		t.Errorf("mode = %v, status = %q", ctx.Mode.Current(), surface.Status())
	}

	ctx, _ = newContext()
	h.Insert(ctx)
	if got := h.CommandLine(ctx); got != handler.Declined {
		t.Errorf("CommandLine() with insert flag = %v", got)
	}
	if !ctx.Mode.Is(imode.Insert) {
		t.Error("declined colon should not change mode")
	}
}

func TestActions(t *testing.T) {
	actions := NewHandler().Actions()
	for _, name := range []string{keymap.ActionInsert, keymap.ActionEscape, keymap.ActionCommandLine} {
		if actions[name] == nil {
			t.Errorf("missing action %s", name)
		}
	}
}
