package keymap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/input/key"
	"github.com/cleichner/rotide/internal/input/mode"
)

// Entry is one line of a keymap: keys in a mode bound to a named action.
// An empty Action removes the binding instead.
type Entry struct {
	Mode   mode.Mode
	Keys   string
	Action string
}

// Keymap is a named list of entries resolved against an action table.
type Keymap struct {
	Name    string
	Source  string
	Entries []Entry
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// Add appends an entry and returns the keymap for chaining.
func (k *Keymap) Add(m mode.Mode, keys, action string) *Keymap {
	k.Entries = append(k.Entries, Entry{Mode: m, Keys: keys, Action: action})
	return k
}

// WithSource sets where the keymap came from and returns the keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Actions maps action names to handlers.
type Actions map[string]handler.Handler

// Merge copies other into a and returns a. Later names win.
func (a Actions) Merge(other Actions) Actions {
	for name, h := range other {
		a[name] = h
	}
	return a
}

// Names returns the action names sorted.
func (a Actions) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Binder receives resolved bindings.
type Binder interface {
	Bind(m mode.Mode, seq key.Sequence, name string, h handler.Handler) error
	Unbind(m mode.Mode, seq key.Sequence) bool
}

type resolved struct {
	entry Entry
	seq   key.Sequence
	h     handler.Handler
}

// Validate resolves every entry against actions without binding anything.
func (k *Keymap) Validate(actions Actions) error {
	_, err := k.resolve(actions)
	return err
}

// Apply resolves every entry and binds them in order. Nothing is bound if
// any entry fails to resolve.
func (k *Keymap) Apply(b Binder, actions Actions) error {
	entries, err := k.resolve(actions)
	if err != nil {
		return err
	}
	for _, r := range entries {
		if r.h == nil {
			b.Unbind(r.entry.Mode, r.seq)
			continue
		}
		if err := b.Bind(r.entry.Mode, r.seq, r.entry.Action, r.h); err != nil {
			return fmt.Errorf("keymap %s: %s %q: %w", k.Name, r.entry.Mode, r.entry.Keys, err)
		}
	}
	return nil
}

// Lookup returns the last entry binding seq in mode m. Entries whose keys
// fail to parse are skipped.
func (k *Keymap) Lookup(m mode.Mode, seq key.Sequence) (Entry, bool) {
	for i := len(k.Entries) - 1; i >= 0; i-- {
		e := k.Entries[i]
		if e.Mode != m {
			continue
		}
		if s, err := key.ParseSequence(e.Keys); err == nil && s.Equals(seq) {
			return e, true
		}
	}
	return Entry{}, false
}

func (k *Keymap) resolve(actions Actions) ([]resolved, error) {
	out := make([]resolved, 0, len(k.Entries))
	var errs []error
	for _, e := range k.Entries {
		seq, err := key.ParseSequence(e.Keys)
		if err != nil {
			errs = append(errs, fmt.Errorf("keymap %s: %s %q: %w", k.Name, e.Mode, e.Keys, err))
			continue
		}
		if !e.Mode.IsValid() {
			errs = append(errs, fmt.Errorf("keymap %s: %q: %w", k.Name, e.Keys, mode.ErrUnknownMode))
			continue
		}
		var h handler.Handler
		if e.Action != "" {
			var ok bool
			if h, ok = actions[e.Action]; !ok {
				errs = append(errs, fmt.Errorf("keymap %s: %s %q: %w: %s", k.Name, e.Mode, e.Keys, ErrUnknownAction, e.Action))
				continue
			}
		}
		out = append(out, resolved{entry: e, seq: seq, h: h})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Bind implements Binder.
func (r *Registry) Bind(m mode.Mode, seq key.Sequence, name string, h handler.Handler) error {
	_, err := r.Register(m, seq, name, h)
	return err
}

// Unbind implements Binder.
func (r *Registry) Unbind(m mode.Mode, seq key.Sequence) bool {
	return r.Unregister(m, seq)
}
