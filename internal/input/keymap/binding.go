package keymap

import (
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/input/key"
	"github.com/cleichner/rotide/internal/input/mode"
)

// Binding maps a key sequence in one mode to a handler.
// A registered Binding is never mutated; re-registering replaces it.
type Binding struct {
	Mode     mode.Mode
	Sequence key.Sequence
	Name     string
	Handler  handler.Handler
}

// String returns "mode:keys", or "mode:keys (name)" when named.
func (b *Binding) String() string {
	s := b.Mode.String() + ":" + b.Sequence.String()
	if b.Name != "" {
		s += " (" + b.Name + ")"
	}
	return s
}

// MatchKind classifies a lookup result.
type MatchKind uint8

const (
	// NoMatch means no binding starts with the sequence.
	NoMatch MatchKind = iota
	// PartialMatch means the sequence is a proper prefix of a binding.
	PartialMatch
	// ExactMatch means the sequence is bound. It wins even when longer
	// bindings share the prefix.
	ExactMatch
)

// String returns a string representation of the kind.
func (k MatchKind) String() string {
	switch k {
	case NoMatch:
		return "none"
	case PartialMatch:
		return "partial"
	case ExactMatch:
		return "exact"
	default:
		return "unknown"
	}
}

// Match is the result of a registry lookup.
type Match struct {
	Kind    MatchKind
	Binding *Binding // set only for ExactMatch

	// Longer is set on an ExactMatch whose sequence also prefixes other
	// bindings.
	Longer bool
}

// IsExact returns true for an exact match.
func (m Match) IsExact() bool {
	return m.Kind == ExactMatch
}

// IsPartial returns true for a partial match.
func (m Match) IsPartial() bool {
	return m.Kind == PartialMatch
}
