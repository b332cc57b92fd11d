// Package lineedit provides the growable line buffer backing a single
// line under edit, together with its cursor-tracking edit primitives.
package lineedit

// Editor is a single-line byte buffer with cursor tracking. All offsets
// are byte offsets; the cursor always satisfies 0 <= cursor <= len.
type Editor struct {
	text   []byte
	cursor int
}

// New creates a new empty Editor.
func New() *Editor {
	return &Editor{}
}

// Text returns the current text.
func (e *Editor) Text() string {
	return string(e.text)
}

// Bytes returns the underlying buffer. The slice is only valid until the
// next edit.
func (e *Editor) Bytes() []byte {
	return e.text
}

// Cursor returns the current cursor position.
func (e *Editor) Cursor() int {
	return e.cursor
}

// SetCursor sets the cursor position, clamping to the valid range.
// Returns true if the cursor actually moved.
func (e *Editor) SetCursor(pos int) bool {
	if pos < 0 {
		pos = 0
	}
	if pos > len(e.text) {
		pos = len(e.text)
	}
	if pos == e.cursor {
		return false
	}
	e.cursor = pos
	return true
}

// Len returns the length of the text.
func (e *Editor) Len() int {
	return len(e.text)
}

// Set replaces the text and moves the cursor to the end.
func (e *Editor) Set(text string) {
	e.text = append(e.text[:0], text...)
	e.cursor = len(e.text)
}

// Clear deletes the whole line. Returns true if there was anything to
// delete.
func (e *Editor) Clear() bool {
	if len(e.text) == 0 {
		return false
	}
	e.text = e.text[:0]
	e.cursor = 0
	return true
}

// Insert adds a byte at the cursor position.
func (e *Editor) Insert(ch byte) {
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = ch
	e.cursor++
}

// InsertString adds a string at the cursor position.
func (e *Editor) InsertString(s string) {
	for i := 0; i < len(s); i++ {
		e.Insert(s[i])
	}
}

// DeleteBackward removes the byte before the cursor (backspace).
// Returns true if a byte was deleted.
func (e *Editor) DeleteBackward() bool {
	if e.cursor == 0 {
		return false
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
	return true
}

// DeleteForward removes the byte at the cursor (delete).
// Returns true if a byte was deleted.
func (e *Editor) DeleteForward() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
	return true
}

// DeleteRange removes the bytes in [start, end), shifting the remainder
// left. The cursor is pulled back by the removed span when it sat past
// the range, or to the range start when it sat inside it.
func (e *Editor) DeleteRange(start, end int) bool {
	if start < 0 {
		start = 0
	}
	if end > len(e.text) {
		end = len(e.text)
	}
	if end <= start {
		return false
	}
	delta := end - start
	e.text = append(e.text[:start], e.text[end:]...)
	if e.cursor > end {
		e.cursor -= delta
	} else if e.cursor > start {
		e.cursor = start
	}
	return true
}

// Left moves the cursor one byte left. Returns true if it moved.
func (e *Editor) Left() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor--
	return true
}

// Right moves the cursor one byte right. Returns true if it moved.
func (e *Editor) Right() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.cursor++
	return true
}

// Home moves the cursor to the beginning of the line. Returns true if it
// moved.
func (e *Editor) Home() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor = 0
	return true
}

// End moves the cursor to the end of the line. Returns true if it moved.
func (e *Editor) End() bool {
	if e.cursor == len(e.text) {
		return false
	}
	e.cursor = len(e.text)
	return true
}

// KillToEnd deletes from the cursor to the end of the line (Ctrl+K).
func (e *Editor) KillToEnd() bool {
	if e.cursor == len(e.text) {
		return false
	}
	e.text = e.text[:e.cursor]
	return true
}

// KillToStart deletes everything before the cursor (Ctrl+U).
func (e *Editor) KillToStart() bool {
	if e.cursor == 0 {
		return false
	}
	e.text = append(e.text[:0], e.text[e.cursor:]...)
	e.cursor = 0
	return true
}

// Transpose swaps the byte before the cursor with the one at the cursor
// (Ctrl+T) and advances the cursor, unless the swap already involved the
// last byte. Requires the cursor to sit strictly inside the line.
func (e *Editor) Transpose() bool {
	if e.cursor == 0 || e.cursor >= len(e.text) {
		return false
	}
	e.text[e.cursor-1], e.text[e.cursor] = e.text[e.cursor], e.text[e.cursor-1]
	if e.cursor != len(e.text)-1 {
		e.cursor++
	}
	return true
}

// DeleteWordBackward deletes the previous word (Ctrl+W): contiguous
// spaces to the left of the cursor, then the contiguous non-spaces
// before them. The cursor lands at the start of the removed span.
func (e *Editor) DeleteWordBackward() bool {
	old := e.cursor
	for e.cursor > 0 && e.text[e.cursor-1] == ' ' {
		e.cursor--
	}
	for e.cursor > 0 && e.text[e.cursor-1] != ' ' {
		e.cursor--
	}
	if e.cursor == old {
		return false
	}
	e.text = append(e.text[:e.cursor], e.text[old:]...)
	return true
}
