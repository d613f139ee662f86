package keymap

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cleichner/rotide/internal/dispatcher/execctx"
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/input/key"
	"github.com/cleichner/rotide/internal/input/mode"
)

func consume(*execctx.Context) handler.Result { return handler.Consumed }

type warnRecorder struct {
	msgs []string
}

func (w *warnRecorder) Warn(msg string, args ...any) {
	w.msgs = append(w.msgs, fmt.Sprintf(msg, args...))
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, mode.Normal, "<C-a><C-b>")
	mustRegister(t, r, mode.Normal, "<Esc>")
	mustRegister(t, r, mode.Normal, "<Esc>j")
	mustRegister(t, r, mode.Insert, "<Esc>")

	tests := []struct {
		mode mode.Mode
		seq  string
		want MatchKind
	}{
		{mode.Normal, "<C-a>", PartialMatch},
		{mode.Normal, "<C-a><C-b>", ExactMatch},
		{mode.Normal, "<C-a><C-c>", NoMatch},
		{mode.Normal, "<C-a><C-b><C-c>", NoMatch},
		{mode.Normal, "<Esc>", ExactMatch},
		{mode.Normal, "<Esc>j", ExactMatch},
		{mode.Normal, "z", NoMatch},
		{mode.Insert, "<Esc>", ExactMatch},
		{mode.Insert, "<C-a>", NoMatch},
		{mode.CommandLine, "<Esc>", NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.seq, func(t *testing.T) {
			got := r.Lookup(tt.mode, key.MustParseSequence(tt.seq))
			if got.Kind != tt.want {
				t.Errorf("Lookup() = %v, want %v", got.Kind, tt.want)
			}
			if got.IsExact() != (got.Binding != nil) {
				t.Error("Binding should be set only for exact matches")
			}
		})
	}

	if !r.Lookup(mode.Normal, key.MustParseSequence("<Esc>")).Longer {
		t.Error("<Esc> prefixes <Esc>j and should report Longer")
	}
	if r.Lookup(mode.Insert, key.MustParseSequence("<Esc>")).Longer {
		t.Error("insert <Esc> has no longer bindings")
	}
	if r.Lookup(mode.Normal, nil).Kind != NoMatch {
		t.Error("empty sequence should not match")
	}
}

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	w := &warnRecorder{}
	r.SetLogger(w)

	seq := key.MustParseSequence("i")
	replaced, err := r.Register(mode.Normal, seq, "first", handler.Func(consume))
	if err != nil || replaced {
		t.Fatalf("first Register() = %v, %v", replaced, err)
	}
	replaced, err = r.Register(mode.Normal, seq, "second", handler.Func(consume))
	if err != nil || !replaced {
		t.Fatalf("second Register() = %v, %v", replaced, err)
	}

	b, ok := r.Get(mode.Normal, seq)
	if !ok || b.Name != "second" {
		t.Fatalf("Get() found = %v", ok)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if len(w.msgs) != 1 || !strings.Contains(w.msgs[0], "replaced") {
		t.Errorf("warnings = %q", w.msgs)
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Register(mode.Normal, nil, "", handler.Func(consume)); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("empty sequence err = %v", err)
	}
	if _, err := r.Register(mode.Normal, key.NewSequence('x'), "", nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("nil handler err = %v", err)
	}
	var nilFunc handler.Func
	if _, err := r.Register(mode.Normal, key.NewSequence('x'), "", nilFunc); !errors.Is(err, ErrNilHandler) {
		t.Errorf("nil Func err = %v", err)
	}
	if _, err := r.Register(mode.Mode(42), key.NewSequence('x'), "", handler.Func(consume)); !errors.Is(err, mode.ErrUnknownMode) {
		t.Errorf("bad mode err = %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d after failed registrations", r.Len())
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, mode.Normal, "gg")
	mustRegister(t, r, mode.Normal, "g")

	if !r.Unregister(mode.Normal, key.MustParseSequence("g")) {
		t.Fatal("Unregister(g) failed")
	}
	if got := r.Lookup(mode.Normal, key.MustParseSequence("g")).Kind; got != PartialMatch {
		t.Errorf("g after unregister = %v, want partial", got)
	}
	if !r.Unregister(mode.Normal, key.MustParseSequence("gg")) {
		t.Fatal("Unregister(gg) failed")
	}
	if got := r.Lookup(mode.Normal, key.MustParseSequence("g")).Kind; got != NoMatch {
		t.Errorf("g after pruning = %v, want none", got)
	}
	if r.Unregister(mode.Normal, key.MustParseSequence("gg")) || r.Unregister(mode.Insert, key.MustParseSequence("x")) {
		t.Error("Unregister of missing binding should fail")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d", r.Len())
	}
}

func TestRegistryBindingsSorted(t *testing.T) {
	r := NewRegistry()
	for _, s := range []string{"l", "h", "<C-a><C-b>", "j"} {
		mustRegister(t, r, mode.Normal, s)
	}
	var got []string
	for _, b := range r.Bindings(mode.Normal) {
		got = append(got, b.Sequence.String())
	}
	want := "<C-a><C-b> h j l"
	if strings.Join(got, " ") != want {
		t.Errorf("Bindings() = %v, want %s", got, want)
	}
	if r.Bindings(mode.CommandLine) != nil {
		t.Error("empty mode should have no bindings")
	}

	r.Clear()
	if r.Len() != 0 || len(r.Bindings(mode.Normal)) != 0 {
		t.Error("Clear() should remove everything")
	}
}

func mustRegister(t *testing.T, r *Registry, m mode.Mode, seq string) {
	t.Helper()
	if _, err := r.Register(m, key.MustParseSequence(seq), seq, handler.Func(consume)); err != nil {
		t.Fatalf("Register(%s, %q) = %v", m, seq, err)
	}
}
