// Package count accumulates numeric repeat prefixes ("multipliers") typed in
// Normal mode before a motion, as in "32j".
package count

import (
	"strconv"
	"strings"
)

// Max caps the value a multiplier can reach.
const Max = 999999

var maxDigits = len(strconv.Itoa(Max))

// Multiplier accumulates decimal digits.
// The zero value is an empty multiplier, meaning "no explicit count".
type Multiplier struct {
	digits strings.Builder
}

// New returns an empty multiplier.
func New() *Multiplier {
	return &Multiplier{}
}

// Push appends a digit.
// Returns true if the digit was accepted.
// Only accepts ASCII digits 0-9. A leading '0' is rejected: with an empty
// accumulator '0' is the column-zero motion, not a count.
func (m *Multiplier) Push(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	if r == '0' && m.digits.Len() == 0 {
		return false
	}
	// Digits past the width of Max cannot change Value; drop them.
	if m.digits.Len() <= maxDigits {
		m.digits.WriteRune(r)
	}
	return true
}

// IsEmpty returns true if no digits have been accumulated.
func (m *Multiplier) IsEmpty() bool {
	return m.digits.Len() == 0
}

// String returns the accumulated digits, possibly empty.
func (m *Multiplier) String() string {
	return m.digits.String()
}

// Value returns the effective count without consuming it
// (1 if nothing was accumulated, capped at Max).
func (m *Multiplier) Value() int {
	if m.digits.Len() == 0 {
		return 1
	}
	s := m.digits.String()
	if len(s) > maxDigits {
		return Max
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 1
	}
	if n > Max {
		return Max
	}
	return n
}

// Take returns the effective count and resets the accumulator.
func (m *Multiplier) Take() int {
	n := m.Value()
	m.Reset()
	return n
}

// Reset clears the accumulated digits.
func (m *Multiplier) Reset() {
	m.digits.Reset()
}
