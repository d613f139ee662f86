package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/cleichner/rotide/internal/host"
	"github.com/cleichner/rotide/internal/input/key"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen

	status      string
	row, col    int
	annotations []host.Annotation

	keys chan key.Code
	done chan struct{}
	wg   sync.WaitGroup
}

// NewTerminal creates a terminal backend on the controlling tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen,
// such as a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		keys:   make(chan key.Code, 64),
		done:   make(chan struct{}),
	}
}

// Init initializes the screen and starts reading keys.
func (t *Terminal) Init() error {
	t.mu.Lock()
	if err := t.screen.Init(); err != nil {
		t.mu.Unlock()
		return err
	}
	t.screen.EnablePaste()
	t.drawLocked()
	t.mu.Unlock()

	t.wg.Add(1)
	go t.pollLoop()
	return nil
}

// Shutdown restores the terminal and stops the key reader.
func (t *Terminal) Shutdown() {
	select {
	case <-t.done:
		return
	default:
	}
	close(t.done)

	t.mu.Lock()
	t.screen.Fini()
	t.mu.Unlock()
	t.wg.Wait()
}

// Keys implements Backend.
func (t *Terminal) Keys() <-chan key.Code {
	return t.keys
}

// pollLoop converts screen events until the screen is finalized.
func (t *Terminal) pollLoop() {
	defer t.wg.Done()
	defer close(t.keys)

	for {
		ev := t.screen.PollEvent()
		switch e := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			c := ConvertKey(e)
			if c == key.None {
				continue
			}
			select {
			case t.keys <- c:
			case <-t.done:
				return
			}
		case *tcell.EventResize:
			t.mu.Lock()
			t.screen.Sync()
			t.drawLocked()
			t.mu.Unlock()
		}
	}
}

// Status implements host.Surface.
func (t *Terminal) Status() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// SetStatus implements host.Surface.
func (t *Terminal) SetStatus(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = text
	t.drawLocked()
}

// Cursor implements host.Surface.
func (t *Terminal) Cursor() (row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.row, t.col
}

// SetCursor implements host.Surface.
func (t *Terminal) SetCursor(row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.row, t.col = max(row, 0), max(col, 0)
	t.drawLocked()
}

// Annotate implements host.Surface. Annotations stay until the screen is
// cleared with ClearAnnotations.
func (t *Terminal) Annotate(row, col int, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.annotations = append(t.annotations, host.Annotation{Row: row, Col: col, Text: text})
	t.drawLocked()
}

// ClearAnnotations removes every annotation.
func (t *Terminal) ClearAnnotations() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.annotations = nil
	t.drawLocked()
}

// Size implements host.Bounded. The bottom row is reserved for the status
// line.
func (t *Terminal) Size() (rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, h := t.screen.Size()
	return max(h-1, 0), w
}

// SetCursorStyle implements Backend.
func (t *Terminal) SetCursorStyle(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch style {
	case CursorUnderline:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyUnderline)
	case CursorBar:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	default:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}
}

// drawLocked repaints the screen. t.mu must be held.
func (t *Terminal) drawLocked() {
	t.screen.Clear()
	w, h := t.screen.Size()

	for _, a := range t.annotations {
		if a.Row >= 0 && a.Row < h-1 {
			t.putString(a.Col, a.Row, w, a.Text, tcell.StyleDefault)
		}
	}

	if h > 0 {
		status := tcell.StyleDefault.Reverse(true)
		for x := 0; x < w; x++ {
			t.screen.SetContent(x, h-1, ' ', nil, status)
		}
		t.putString(0, h-1, w, t.status, status)
	}

	t.screen.ShowCursor(t.col, t.row)
	t.screen.Show()
}

// putString writes s at (x, y), clipped to width w.
func (t *Terminal) putString(x, y, w int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= w {
			return
		}
		if x >= 0 {
			t.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

var _ Backend = (*Terminal)(nil)
