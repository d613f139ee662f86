package app

import (
	"fmt"

	"github.com/cleichner/rotide/internal/input/key"
)

// Replay is a Source that yields a fixed key sequence and then closes.
type Replay struct {
	keys chan key.Code
}

// NewReplay creates a source yielding seq.
func NewReplay(seq key.Sequence) *Replay {
	keys := make(chan key.Code, len(seq))
	for _, c := range seq {
		keys <- c
	}
	close(keys)
	return &Replay{keys: keys}
}

// ParseReplay creates a source from key notation such as "3j:q<CR>".
func ParseReplay(notation string) (*Replay, error) {
	seq, err := key.ParseSequence(notation)
	if err != nil {
		return nil, fmt.Errorf("replay %q: %w", notation, err)
	}
	return NewReplay(seq), nil
}

// Keys implements Source.
func (r *Replay) Keys() <-chan key.Code {
	return r.keys
}
