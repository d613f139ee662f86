package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNilHandler indicates a nil command handler was registered.
	ErrNilHandler = errors.New("dispatcher: nil command handler")

	// ErrPanic indicates a command handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)
