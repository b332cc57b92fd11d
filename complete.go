package minline

import (
	"bytes"
	"fmt"
)

// Complete negotiates tab completion for the token beginning at byte
// offset start. The longest common prefix of the candidates is computed
// and the portion not already typed is inserted at the cursor. Accepted
// is true when exactly one candidate remains, or when the common prefix
// is itself a complete candidate and allowPrefix permits taking it.
// When the user is already at a branching point (nothing new to
// insert), the remaining candidates are displayed in a table below the
// line and the line is redrawn.
func (ed *Editor) Complete(start int, candidates []string, allowPrefix bool) (accepted bool, res Result) {
	if len(candidates) == 0 {
		return false, Result{}
	}

	// Longest common byte prefix; a single mismatching candidate
	// narrows it to the first differing byte. wholePrefix tracks
	// whether the prefix coincides with a complete candidate.
	prefixLen := len(candidates[0])
	wholePrefix := true
	for _, m := range candidates[1:] {
		common := 0
		for common < prefixLen && common < len(m) && candidates[0][common] == m[common] {
			common++
		}
		if common != prefixLen {
			prefixLen = common
			wholePrefix = len(m) == common
		}
	}

	// The token from start to the cursor already matches; only the rest
	// of the prefix needs inserting.
	typed := ed.Point() - start
	inserted := false
	if remain := prefixLen - typed; remain > 0 {
		res = ed.InsertText(candidates[0][typed : typed+remain])
		if res.Err != nil {
			return false, res
		}
		inserted = true
	}

	if len(candidates) == 1 {
		return true, res
	}
	if wholePrefix && allowPrefix {
		return true, res
	}

	// No progress: the user is at a branching point, so show what the
	// branches are.
	if !inserted {
		if err := ed.displayMatches(candidates); err != nil {
			return false, Result{Err: err}
		}
		// The table ended on a fresh row, so redraw without clearing
		// the rows of the previous render.
		if err := ed.refresh(false); err != nil {
			return false, Result{Err: err}
		}
	}
	return false, res
}

// displayMatches prints a multi-column table of candidates beneath the
// current line. Column width is the longest candidate plus a separator
// space; the column count is whatever the terminal width fits.
func (ed *Editor) displayMatches(matches []string) error {
	widest := 0
	for _, m := range matches {
		if len(m) > widest {
			widest = len(m)
		}
	}
	cols := ed.Width() / (widest + 1)
	if cols < 1 {
		cols = 1
	}

	var out bytes.Buffer
	out.WriteString("\r\n")
	for i := 0; i < len(matches); {
		for c := 0; c < cols && i < len(matches); c, i = c+1, i+1 {
			fmt.Fprintf(&out, "%-*s ", widest, matches[i])
		}
		out.WriteString("\r\n")
	}
	return ed.write(out.Bytes())
}
