package backend

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/cleichner/rotide/internal/host"
	"github.com/cleichner/rotide/internal/input/key"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Code
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), 'j'},
		{"colon", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), key.Colon},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModCtrl), key.CtrlA},
		{"ctrl key", tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl), key.CtrlB},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.Escape},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Enter},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.Backspace},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), key.Up},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), key.F5},
		{"unsupported", tcell.NewEventKey(tcell.KeyF40, 0, tcell.ModNone), key.None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertKey(tt.ev); got != tt.want {
				t.Errorf("ConvertKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	sim.SetSize(40, 10)
	t.Cleanup(term.Shutdown)
	return term, sim
}

// rowText returns screen row y with trailing spaces trimmed.
func rowText(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestTerminalKeys(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	want := []key.Code{'j', key.Escape}
	for _, w := range want {
		select {
		case got := <-term.Keys():
			if got != w {
				t.Errorf("key = %v, want %v", got, w)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("no key delivered, want %v", w)
		}
	}
}

func TestTerminalSurface(t *testing.T) {
	term, sim := newSimTerminal(t)
	var s host.Surface = term

	s.SetStatus("-- INSERT --")
	s.Annotate(2, 5, "hello")
	s.SetCursor(3, -4)

	if s.Status() != "-- INSERT --" {
		t.Errorf("Status() = %q", s.Status())
	}
	if row, col := s.Cursor(); row != 3 || col != 0 {
		t.Errorf("Cursor() = (%d, %d), want (3, 0)", row, col)
	}
	if rows, cols := term.Size(); rows != 9 || cols != 40 {
		t.Errorf("Size() = (%d, %d), want (9, 40)", rows, cols)
	}

	if got := rowText(sim, 9); got != "-- INSERT --" {
		t.Errorf("status row = %q", got)
	}
	if got := rowText(sim, 2); got != "     hello" {
		t.Errorf("annotation row = %q", got)
	}
	if x, y, visible := sim.GetCursor(); x != 0 || y != 3 || !visible {
		t.Errorf("screen cursor = (%d, %d, %v)", x, y, visible)
	}

	term.ClearAnnotations()
	if got := rowText(sim, 2); got != "" {
		t.Errorf("annotation row after clear = %q", got)
	}
}

func TestTerminalShutdownClosesKeys(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	term.Shutdown()
	term.Shutdown()

	select {
	case _, ok := <-term.Keys():
		if ok {
			t.Error("Keys() delivered after Shutdown")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Keys() not closed after Shutdown")
	}
}
