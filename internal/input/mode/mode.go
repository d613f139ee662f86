package mode

import (
	"errors"
	"fmt"
	"strings"
)

// Mode identifies an input mode.
type Mode uint8

const (
	// Normal is the navigation and command mode. It is the initial mode.
	Normal Mode = iota

	// Insert is the text entry mode.
	Insert

	// CommandLine collects an ex-style command after ":".
	CommandLine
)

// ErrUnknownMode is returned when a mode name cannot be resolved.
var ErrUnknownMode = errors.New("unknown mode")

// All returns every mode in declaration order.
func All() []Mode {
	return []Mode{Normal, Insert, CommandLine}
}

// String returns the mode identifier used in configuration and scripts.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case CommandLine:
		return "command-line"
	default:
		return fmt.Sprintf("mode(%d)", m)
	}
}

// DisplayName returns a human-readable name for the status line.
func (m Mode) DisplayName() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case CommandLine:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true for the three defined modes.
func (m Mode) IsValid() bool {
	return m <= CommandLine
}

// Parse resolves a mode name (case-insensitive).
// Accepts "normal", "n", "insert", "i", "command-line", "cmdline", "command", "c".
func Parse(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal", "n", "":
		return Normal, nil
	case "insert", "i":
		return Insert, nil
	case "command-line", "commandline", "cmdline", "command", "c":
		return CommandLine, nil
	default:
		return Normal, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
