package key

import "strings"

// Sequence is an ordered series of key codes forming a command.
// Examples: "<C-a><C-b>", "<Esc>j", "i"
type Sequence []Code

// NewSequence creates a sequence from the given codes.
func NewSequence(codes ...Code) Sequence {
	seq := make(Sequence, len(codes))
	copy(seq, codes)
	return seq
}

// Len returns the number of codes in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty returns true if the sequence has no codes.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Last returns the last code, or None if empty.
func (s Sequence) Last() Code {
	if len(s) == 0 {
		return None
	}
	return s[len(s)-1]
}

// String returns the canonical Vim-style representation.
// The result parses back to an equal sequence.
func (s Sequence) String() string {
	var sb strings.Builder
	for _, c := range s {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Pretty returns the bracketed status-line form, e.g. "<CTRL+a><CTRL+b>".
func (s Sequence) Pretty() string {
	var sb strings.Builder
	for _, c := range s {
		sb.WriteString(c.Pretty())
	}
	return sb.String()
}

// Equals returns true if two sequences are identical.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, c := range s {
		if c != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, c := range prefix {
		if s[i] != c {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	return NewSequence(s...)
}

// Append returns a new sequence with the code added at the end.
// The receiver is never modified.
func (s Sequence) Append(c Code) Sequence {
	out := make(Sequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, c)
}
