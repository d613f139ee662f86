package cmdline

// History is the append-only list of submitted command lines,
// oldest first. It is not safe for concurrent use.
type History struct {
	items []string
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{items: make([]string, 0, 32)}
}

// Add records a submitted line. Empty lines are not recorded.
// Repeated lines are recorded every time.
func (h *History) Add(line string) bool {
	if line == "" {
		return false
	}
	h.items = append(h.items, line)
	return true
}

// Len returns the number of recorded lines.
func (h *History) Len() int {
	return len(h.items)
}

// At returns the line at index i (0 is the oldest).
func (h *History) At(i int) (string, bool) {
	if i < 0 || i >= len(h.items) {
		return "", false
	}
	return h.items[i], true
}

// Last returns the most recent line.
func (h *History) Last() (string, bool) {
	return h.At(len(h.items) - 1)
}

// Entries returns a copy of all lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.items))
	copy(out, h.items)
	return out
}

// Contains reports whether line was ever submitted.
func (h *History) Contains(line string) bool {
	for _, item := range h.items {
		if item == line {
			return true
		}
	}
	return false
}
