// Package history keeps the bounded log of previously submitted lines
// and drives up/down recall during editing.
package history

// DefaultMaxLen is the history bound used until SetMaxLen is called.
const DefaultMaxLen = 100

// Direction selects which neighbouring entry a recall moves to.
type Direction int

const (
	// Next moves toward the newest entry.
	Next Direction = iota
	// Prev moves toward the oldest entry.
	Prev
)

// History is an ordered log of submitted lines, most recent last,
// bounded to a maximum count. While a line is being edited the newest
// slot holds the in-progress line as a working entry; recall keeps that
// slot (and any recalled entry the user edited) up to date so that
// navigating away and back does not lose un-submitted edits.
type History struct {
	entries []string
	maxLen  int

	// recall offset from the newest entry; 0 is the working entry.
	index int
}

// New creates an empty history with the default bound.
func New() *History {
	return &History{maxLen: DefaultMaxLen}
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}

// MaxLen returns the current bound.
func (h *History) MaxLen() int {
	return h.maxLen
}

// Entries returns a copy of the stored lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Add appends a line. It is a no-op when the bound is zero or when the
// line equals the most recent entry; the oldest entry is evicted when
// the bound is reached. Returns whether the line was stored.
func (h *History) Add(line string) bool {
	if h.maxLen == 0 {
		return false
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == line {
		return false
	}
	if len(h.entries) == h.maxLen {
		h.entries = append(h.entries[:0], h.entries[1:]...)
	}
	h.entries = append(h.entries, line)
	return true
}

// SetMaxLen changes the bound, retaining only the most recent entries.
// Bounds below one are rejected.
func (h *History) SetMaxLen(n int) bool {
	if n < 1 {
		return false
	}
	if len(h.entries) > n {
		h.entries = append([]string(nil), h.entries[len(h.entries)-n:]...)
	}
	h.maxLen = n
	return true
}

// Pop drops the newest entry. Used to discard the working entry when the
// line under edit is submitted or abandoned.
func (h *History) Pop() {
	if len(h.entries) == 0 {
		return
	}
	h.entries = h.entries[:len(h.entries)-1]
}

// ResetRecall points the recall index back at the working entry. Called
// at the start of each editing session.
func (h *History) ResetRecall() {
	h.index = 0
}

// Recall saves the live edit buffer into the entry currently selected,
// then moves the recall index one step in the given direction. At either
// bound it reports no movement; otherwise it returns the newly selected
// entry, which replaces the live buffer.
func (h *History) Recall(dir Direction, current string) (string, bool) {
	if len(h.entries) < 2 {
		return "", false
	}
	h.entries[len(h.entries)-1-h.index] = current
	if dir == Prev {
		h.index++
	} else {
		h.index--
	}
	if h.index < 0 {
		h.index = 0
		return "", false
	}
	if h.index >= len(h.entries) {
		h.index = len(h.entries) - 1
		return "", false
	}
	return h.entries[len(h.entries)-1-h.index], true
}
