package cmdline

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantName string
		wantArgs []string
	}{
		{"empty", "", "", nil},
		{"blank", "   \t ", "", nil},
		{"name only", "hello", "hello", nil},
		{"with args", "test a b", "test", []string{"a", "b"}},
		{"extra whitespace", "  test   a\tb  ", "test", []string{"a", "b"}},
		{"no quoting", `echo "a b"`, "echo", []string{`"a`, `b"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args := Parse(tt.text)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory()

	if h.Add("") {
		t.Error("empty line should not be recorded")
	}
	h.Add("hello")
	h.Add("hello")
	h.Add("test a b")

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if last, _ := h.Last(); last != "test a b" {
		t.Errorf("Last() = %q", last)
	}
	if !h.Contains("hello") || h.Contains("nope") {
		t.Error("Contains() mismatch")
	}
	if _, ok := h.At(3); ok {
		t.Error("At() out of range should fail")
	}

	entries := h.Entries()
	entries[0] = "changed"
	if first, _ := h.At(0); first != "hello" {
		t.Error("Entries() should return a copy")
	}
}

func TestBufferEditing(t *testing.T) {
	b := NewBuffer(nil)
	for _, r := range "wq" {
		b.Insert(r)
	}
	if b.String() != "wq" || b.Cursor() != 2 {
		t.Fatalf("got %q at %d", b.String(), b.Cursor())
	}

	b.MoveLeft()
	b.Insert('x')
	if b.String() != "wxq" {
		t.Errorf("insert in middle: got %q", b.String())
	}
	if b.Display() != ":wxq" {
		t.Errorf("Display() = %q", b.Display())
	}

	b.Backspace()
	if b.String() != "wq" || b.Cursor() != 1 {
		t.Errorf("backspace: got %q at %d", b.String(), b.Cursor())
	}

	b.Delete()
	if b.String() != "w" {
		t.Errorf("delete: got %q", b.String())
	}

	if b.MoveRight() {
		t.Error("MoveRight at end should fail")
	}
	b.MoveToStart()
	if b.MoveLeft() || b.Backspace() {
		t.Error("MoveLeft/Backspace at start should fail")
	}
	if b.Insert('\x1b') {
		t.Error("control characters should not be inserted")
	}

	b.Reset()
	if !b.IsEmpty() || b.Cursor() != 0 {
		t.Error("Reset() should clear the buffer")
	}
}

func TestBufferHistoryNavigation(t *testing.T) {
	h := NewHistory()
	h.Add("first")
	h.Add("second")

	b := NewBuffer(h)
	b.Set("draft")

	steps := []struct {
		op   func() bool
		ok   bool
		want string
	}{
		{b.HistoryPrev, true, "second"},
		{b.HistoryPrev, true, "first"},
		{b.HistoryPrev, false, "first"},
		{b.HistoryNext, true, "second"},
		{b.HistoryNext, true, "draft"},
		{b.HistoryNext, false, "draft"},
	}
	for i, s := range steps {
		if ok := s.op(); ok != s.ok {
			t.Fatalf("step %d: ok = %v, want %v", i, ok, s.ok)
		}
		if b.String() != s.want {
			t.Fatalf("step %d: text = %q, want %q", i, b.String(), s.want)
		}
	}
	if b.Cursor() != len("draft") {
		t.Errorf("cursor should be at end after restore, got %d", b.Cursor())
	}
}
