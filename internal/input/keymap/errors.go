package keymap

import (
	"errors"
	"fmt"
)

// Registration and loading errors.
var (
	// ErrEmptySequence indicates a binding with no keys.
	ErrEmptySequence = errors.New("keymap: empty key sequence")

	// ErrNilHandler indicates a binding with no handler.
	ErrNilHandler = errors.New("keymap: nil handler")

	// ErrUnknownAction indicates a keymap entry names an action that is
	// not in the action table.
	ErrUnknownAction = errors.New("keymap: unknown action")

	// ErrUnknownFormat indicates a keymap file extension that is neither
	// YAML nor TOML.
	ErrUnknownFormat = errors.New("keymap: unknown file format")
)

// ParseError describes a keymap file that could not be decoded.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("keymap: %s", e.Message)
	}
	return fmt.Sprintf("keymap %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
