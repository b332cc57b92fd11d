package minline

import (
	"minline/lineedit"
	"minline/term"
)

// initState resets the per-call editing state: fresh buffer, current
// terminal width, and render geometry seeded from the prompt alone.
func (ed *Editor) initState(prompt string) {
	s := &ed.state
	*s = state{
		buf:       lineedit.New(),
		prompt:    prompt,
		promptLen: len(prompt),
		width:     ed.Width(),
		maxRows:   1,
	}
	s.prevCursor = locate(s.width, s.promptLen, nil, 0)
	s.prevLineEnd = s.prevCursor
}

// edit runs the core editing loop. The input descriptor must already be
// in raw mode so every keystroke reaches the loop immediately.
func (ed *Editor) edit(prompt string) (string, error) {
	ed.initState(prompt)
	s := &ed.state

	// The newest history slot holds the line under edit as a working
	// entry; it starts empty and is dropped again on the way out.
	ed.hist.ResetRecall()
	ed.hist.Add("")
	defer ed.hist.Pop()

	if err := ed.write([]byte(prompt)); err != nil {
		return "", err
	}

	fd := int(ed.in.Fd())
	src := byteSource{fd: fd}
	for {
		c, err := term.ReadByte(fd)
		if err != nil {
			// End of input mid-line submits what was typed.
			break
		}

		h, last, ok := ed.keys.Lookup(c, src)
		if !ok {
			continue
		}

		res := h(ed, string([]byte{last}))
		if res.Err != nil {
			return "", res.Err
		}
		if res.Refresh {
			if err := ed.refreshLine(); err != nil {
				return "", err
			}
		} else if res.CursorRefresh {
			if err := ed.refreshCursor(); err != nil {
				return "", err
			}
		}
		if res.Done {
			s.buf.End()
			break
		}
	}

	return s.buf.Text(), nil
}

// editInsert inserts one byte at the cursor. An append at the end of the
// line that stays on the current row (or is itself a newline) is echoed
// directly and the cached geometry advanced; anything else needs a full
// refresh.
func (ed *Editor) editInsert(c byte) Result {
	s := &ed.state
	s.buf.Insert(c)

	if s.buf.Cursor() == s.buf.Len() {
		end := advance(s.prevCursor, c, s.width)
		if end.col > 0 || c == '\n' {
			s.prevCursor = end
			s.prevLineEnd = end
			if end.row+1 > s.maxRows {
				s.maxRows = end.row + 1
			}
			echo := c
			if ed.maskMode {
				echo = '*'
			}
			if err := ed.write([]byte{echo}); err != nil {
				return Result{Err: err}
			}
			return Result{}
		}
	}

	return Result{Refresh: true}
}

// InsertText inserts text at the cursor position, byte by byte.
func (ed *Editor) InsertText(text string) Result {
	var res Result
	for i := 0; i < len(text); i++ {
		r := ed.editInsert(text[i])
		if r.Err != nil {
			return r
		}
		res.Refresh = res.Refresh || r.Refresh
	}
	return res
}
