package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingSurface indicates the host surface is required but not set.
	ErrMissingSurface = errors.New("execution context: surface is required")

	// ErrMissingMode indicates the mode controller is required but not set.
	ErrMissingMode = errors.New("execution context: mode controller is required")

	// ErrMissingCount indicates the multiplier is required but not set.
	ErrMissingCount = errors.New("execution context: multiplier is required")

	// ErrMissingCommandLine indicates the command-line state is required but not set.
	ErrMissingCommandLine = errors.New("execution context: command line is required")
)
