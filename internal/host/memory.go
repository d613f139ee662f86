package host

// Memory is an in-memory Surface used by tests and headless replay.
// It is not safe for concurrent use.
type Memory struct {
	status      string
	row, col    int
	rows, cols  int
	annotations []Annotation
	statusLog   []string
}

// NewMemory creates an unbounded in-memory surface.
func NewMemory() *Memory {
	return &Memory{}
}

// NewBoundedMemory creates an in-memory surface with the given size.
func NewBoundedMemory(rows, cols int) *Memory {
	return &Memory{rows: rows, cols: cols}
}

// Status implements Surface.
func (m *Memory) Status() string {
	return m.status
}

// SetStatus implements Surface. Every value is also kept in StatusLog.
func (m *Memory) SetStatus(text string) {
	m.status = text
	m.statusLog = append(m.statusLog, text)
}

// Cursor implements Surface.
func (m *Memory) Cursor() (row, col int) {
	return m.row, m.col
}

// SetCursor implements Surface. Negative coordinates clamp to zero.
func (m *Memory) SetCursor(row, col int) {
	m.row = max(row, 0)
	m.col = max(col, 0)
}

// Annotate implements Surface.
func (m *Memory) Annotate(row, col int, text string) {
	m.annotations = append(m.annotations, Annotation{Row: row, Col: col, Text: text})
}

// Size implements Bounded. A zero size means unbounded; see IsBounded.
func (m *Memory) Size() (rows, cols int) {
	return m.rows, m.cols
}

// IsBounded reports whether the surface was created with a size.
func (m *Memory) IsBounded() bool {
	return m.rows > 0 && m.cols > 0
}

// Annotations returns the recorded Annotate calls in order.
func (m *Memory) Annotations() []Annotation {
	out := make([]Annotation, len(m.annotations))
	copy(out, m.annotations)
	return out
}

// StatusLog returns every status value set, oldest first.
func (m *Memory) StatusLog() []string {
	out := make([]string, len(m.statusLog))
	copy(out, m.statusLog)
	return out
}
