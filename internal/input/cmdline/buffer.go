package cmdline

import "unicode"

// Prompt is displayed in front of the buffer text on the status line.
const Prompt = ':'

// Buffer is the text being typed on the command line together with an
// edit cursor and a position in History for Up/Down navigation.
type Buffer struct {
	text   []rune
	cursor int

	history      *History
	historyIndex int // -1 while editing fresh input
	saved        []rune
}

// NewBuffer creates an empty buffer that navigates the given history.
// h may be nil, in which case history navigation is a no-op.
func NewBuffer(h *History) *Buffer {
	return &Buffer{
		text:         make([]rune, 0, 64),
		history:      h,
		historyIndex: -1,
	}
}

// String returns the buffer text.
func (b *Buffer) String() string {
	return string(b.text)
}

// Display returns the status line form, the prompt followed by the text.
func (b *Buffer) Display() string {
	return string(Prompt) + string(b.text)
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// Cursor returns the edit cursor position in runes.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Set replaces the text and puts the cursor at the end.
func (b *Buffer) Set(s string) {
	b.text = []rune(s)
	b.cursor = len(b.text)
}

// Reset clears the text and leaves history navigation.
func (b *Buffer) Reset() {
	b.text = b.text[:0]
	b.cursor = 0
	b.historyIndex = -1
	b.saved = nil
}

// Insert inserts a printable rune at the cursor.
func (b *Buffer) Insert(r rune) bool {
	if !unicode.IsPrint(r) {
		return false
	}
	if b.cursor >= len(b.text) {
		b.text = append(b.text, r)
	} else {
		b.text = append(b.text[:b.cursor+1], b.text[b.cursor:]...)
		b.text[b.cursor] = r
	}
	b.cursor++
	return true
}

// Backspace deletes the rune before the cursor.
func (b *Buffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	return true
}

// Delete deletes the rune under the cursor.
func (b *Buffer) Delete() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
	return true
}

// MoveLeft moves the cursor one rune left.
func (b *Buffer) MoveLeft() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

// MoveRight moves the cursor one rune right.
func (b *Buffer) MoveRight() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	b.cursor++
	return true
}

// MoveToStart moves the cursor before the first rune.
func (b *Buffer) MoveToStart() {
	b.cursor = 0
}

// MoveToEnd moves the cursor after the last rune.
func (b *Buffer) MoveToEnd() {
	b.cursor = len(b.text)
}

// HistoryPrev replaces the text with the previous history entry.
// The text being edited is saved and restored by HistoryNext.
func (b *Buffer) HistoryPrev() bool {
	if b.history == nil || b.history.Len() == 0 {
		return false
	}
	switch {
	case b.historyIndex == -1:
		b.saved = append([]rune(nil), b.text...)
		b.historyIndex = b.history.Len() - 1
	case b.historyIndex > 0:
		b.historyIndex--
	default:
		return false
	}
	line, _ := b.history.At(b.historyIndex)
	b.Set(line)
	return true
}

// HistoryNext moves toward newer entries, ending at the saved input.
func (b *Buffer) HistoryNext() bool {
	if b.history == nil || b.historyIndex == -1 {
		return false
	}
	b.historyIndex++
	if b.historyIndex >= b.history.Len() {
		b.historyIndex = -1
		b.text = b.saved
		if b.text == nil {
			b.text = make([]rune, 0, 64)
		}
		b.cursor = len(b.text)
		b.saved = nil
		return true
	}
	line, _ := b.history.At(b.historyIndex)
	b.Set(line)
	return true
}
