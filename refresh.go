package minline

import (
	"bytes"
	"fmt"
)

// Escape sequences the refresh protocol emits.
const (
	escClearScreen = "\x1b[H\x1b[2J"
	escClearRow    = "\r\x1b[0K"
	escRowUp       = "\x1bM"
)

// position is the (row, column) a buffer offset lands on for a given
// prompt length and terminal width.
type position struct {
	row, col int
}

// advance moves a position past one byte: one column per byte, wrapping
// to a new row when the column counter reaches the width or the byte is
// a literal newline (which resets the column regardless of width).
func advance(p position, ch byte, width int) position {
	p.col++
	if p.col == width || ch == '\n' {
		p.row++
		p.col = 0
	}
	return p
}

// locate simulates laying out promptLen columns followed by the first
// upTo bytes of line, returning the resulting position.
func locate(width, promptLen int, line []byte, upTo int) position {
	p := position{row: promptLen / width, col: promptLen % width}
	if upTo > len(line) {
		upTo = len(line)
	}
	for _, ch := range line[:upTo] {
		p = advance(p, ch, width)
	}
	return p
}

// refreshCursor repositions the cursor with relative movement sequences
// computed against the previously rendered position. Content layout is
// assumed unchanged. A no-op when the geometry did not move.
func (ed *Editor) refreshCursor() error {
	s := &ed.state
	cur := locate(s.width, s.promptLen, s.buf.Bytes(), s.buf.Cursor())
	if cur == s.prevCursor {
		return nil
	}

	var out bytes.Buffer
	if cur.row < s.prevCursor.row {
		fmt.Fprintf(&out, "\x1b[%dA", s.prevCursor.row-cur.row)
	} else if cur.row > s.prevCursor.row {
		fmt.Fprintf(&out, "\x1b[%dB", cur.row-s.prevCursor.row)
	}
	if cur.col > s.prevCursor.col {
		fmt.Fprintf(&out, "\x1b[%dC", cur.col-s.prevCursor.col)
	} else if cur.col < s.prevCursor.col {
		fmt.Fprintf(&out, "\x1b[%dD", s.prevCursor.col-cur.col)
	}

	s.prevCursor = cur
	return ed.write(out.Bytes())
}

// refreshLine fully redraws the prompt and line, clearing every row the
// previous render used.
func (ed *Editor) refreshLine() error {
	return ed.refresh(true)
}

// refresh reconciles the visible screen with the buffer and cursor.
// clearRows is false right after a completion table was printed: the
// table ended with a fresh row, so the cursor is already at a known
// column-0 position and the old rows need no clearing.
func (ed *Editor) refresh(clearRows bool) error {
	s := &ed.state
	oldWidth := s.width
	s.width = ed.Width()

	line := s.buf.Bytes()
	lineEnd := locate(s.width, s.promptLen, line, s.buf.Len())
	cur := locate(s.width, s.promptLen, line, s.buf.Cursor())

	var out bytes.Buffer

	// A width change invalidates every previously rendered row.
	if oldWidth != s.width || clearRows {
		if s.maxRows > 1 {
			// Walk down to the last used row, then clear upward.
			if down := s.maxRows - s.prevCursor.row - 1; down > 0 {
				fmt.Fprintf(&out, "\x1b[%dB", down)
			}
			for j := 0; j < s.maxRows-1; j++ {
				out.WriteString(escClearRow)
				out.WriteString(escRowUp)
			}
		}
		out.WriteString(escClearRow)
	}

	out.WriteString(s.prompt)
	if ed.maskMode {
		for i := 0; i < s.buf.Len(); i++ {
			out.WriteByte('*')
		}
	} else {
		out.Write(line)
	}

	// When the cursor sits at end-of-buffer exactly on a row boundary,
	// the terminal's own wrap leaves it one row short of where the
	// geometry says it is, so force the newline ourselves. Not needed
	// when the last byte was a newline: that byte already moved it.
	pos := s.buf.Cursor()
	if pos > 0 && pos == s.buf.Len() &&
		cur.row > 0 && cur.col == 0 && line[pos-1] != '\n' {
		out.WriteString("\n\r")
	}

	// The cursor is now at the end of the line; move it up to the edit
	// position and set the column.
	if up := lineEnd.row - cur.row; up > 0 {
		fmt.Fprintf(&out, "\x1b[%dA", up)
	}
	if cur.col != 0 {
		fmt.Fprintf(&out, "\r\x1b[%dC", cur.col)
	} else {
		out.WriteString("\r")
	}

	s.prevCursor = cur
	s.prevLineEnd = lineEnd
	if rows := lineEnd.row + 1; rows > s.maxRows {
		s.maxRows = rows
	}

	return ed.write(out.Bytes())
}
