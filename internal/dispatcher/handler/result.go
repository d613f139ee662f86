package handler

// Result reports whether a handler acted on its input.
type Result uint8

const (
	// Consumed means the handler acted; the key or command is done.
	Consumed Result = iota
	// Declined means the handler had no effect. For keys the pending
	// sequence is cleared and the trailing key may be retried alone; for
	// commands the next handler is tried.
	Declined
)

// Accepted is the command-handler name for Consumed.
const Accepted = Consumed

// String returns a string representation of the result.
func (r Result) String() string {
	switch r {
	case Consumed:
		return "consumed"
	case Declined:
		return "declined"
	default:
		return "unknown"
	}
}

// IsConsumed returns true if the handler acted.
func (r Result) IsConsumed() bool {
	return r == Consumed
}

// IsDeclined returns true if the handler had no effect.
func (r Result) IsDeclined() bool {
	return r == Declined
}

// FromBool maps true to Consumed and false to Declined.
func FromBool(ok bool) Result {
	if ok {
		return Consumed
	}
	return Declined
}
