package input

import (
	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/input/mode"
)

// Status says what happened to one key.
type Status uint8

const (
	// Handled means a binding consumed the key.
	Handled Status = iota
	// Pending means the key extended a sequence that awaits more keys.
	Pending
	// Declined means a matched binding declined and nothing is pending.
	Declined
	// Unmatched means no binding starts with the key.
	Unmatched
	// CommandLine means the key was applied to the command line.
	CommandLine
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case Handled:
		return "handled"
	case Pending:
		return "pending"
	case Declined:
		return "declined"
	case Unmatched:
		return "unmatched"
	case CommandLine:
		return "command-line"
	default:
		return "unknown"
	}
}

// Outcome is the result of HandleKey.
type Outcome struct {
	// Result is Consumed when the key had an effect.
	Result handler.Result
	// Status classifies the key.
	Status Status
}

// Config configures the input handler.
type Config struct {
	// InitialMode is the starting mode (default: Normal).
	InitialMode mode.Mode

	// Builtins installs the default keymap and built-in commands.
	Builtins bool

	// ReportUnknownCommands shows "Not an editor command" for lines no
	// handler accepts.
	ReportUnknownCommands bool

	// EnableMetrics enables key and command statistics.
	EnableMetrics bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialMode:           mode.Normal,
		Builtins:              true,
		ReportUnknownCommands: true,
		EnableMetrics:         true,
	}
}

// Logger is the logging surface the input handler needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}
