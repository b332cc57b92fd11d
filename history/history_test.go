package history

import "testing"

func TestAddDeduplicates(t *testing.T) {
	h := New()
	h.Add("a")
	h.Add("a")
	h.Add("b")
	if h.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", h.Len())
	}
	got := h.Entries()
	if got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}

	// Non-consecutive duplicates are kept.
	h.Add("a")
	if h.Len() != 3 {
		t.Errorf("expected non-consecutive duplicate to be stored, len=%d", h.Len())
	}
}

func TestAddEvictsOldest(t *testing.T) {
	h := New()
	h.SetMaxLen(3)
	h.Add("one")
	h.Add("two")
	h.Add("three")
	h.Add("four")
	got := h.Entries()
	if len(got) != 3 || got[0] != "two" || got[2] != "four" {
		t.Errorf("expected [two three four], got %v", got)
	}
}

func TestAddZeroMax(t *testing.T) {
	h := New()
	h.maxLen = 0
	if h.Add("a") {
		t.Error("Add with zero bound should be a no-op")
	}
	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d entries", h.Len())
	}
}

func TestSetMaxLen(t *testing.T) {
	h := New()
	if h.SetMaxLen(0) {
		t.Error("SetMaxLen below 1 should be rejected")
	}
	h.Add("one")
	h.Add("two")
	h.Add("three")
	if !h.SetMaxLen(2) {
		t.Fatal("SetMaxLen(2) should succeed")
	}
	got := h.Entries()
	if len(got) != 2 || got[0] != "two" || got[1] != "three" {
		t.Errorf("expected most recent [two three] retained, got %v", got)
	}
	if h.MaxLen() != 2 {
		t.Errorf("expected bound 2, got %d", h.MaxLen())
	}
}

func TestPop(t *testing.T) {
	h := New()
	h.Add("a")
	h.Add("")
	h.Pop()
	if h.Len() != 1 || h.Entries()[0] != "a" {
		t.Errorf("expected [a] after Pop, got %v", h.Entries())
	}
	h.Pop()
	h.Pop() // empty pop is safe
	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d entries", h.Len())
	}
}

func TestRecall(t *testing.T) {
	h := New()
	h.Add("first")
	h.Add("second")
	h.Add("") // working entry
	h.ResetRecall()

	line, ok := h.Recall(Prev, "")
	if !ok || line != "second" {
		t.Fatalf("expected 'second', got %q ok=%v", line, ok)
	}
	line, ok = h.Recall(Prev, line)
	if !ok || line != "first" {
		t.Fatalf("expected 'first', got %q ok=%v", line, ok)
	}

	// At the oldest bound there is no movement.
	if _, ok := h.Recall(Prev, line); ok {
		t.Error("Recall past the oldest entry should report no movement")
	}

	line, ok = h.Recall(Next, "first")
	if !ok || line != "second" {
		t.Fatalf("expected 'second' moving next, got %q ok=%v", line, ok)
	}
	line, ok = h.Recall(Next, line)
	if !ok || line != "" {
		t.Fatalf("expected working entry, got %q ok=%v", line, ok)
	}
	if _, ok := h.Recall(Next, line); ok {
		t.Error("Recall past the newest entry should report no movement")
	}
}

// Un-submitted edits to a recalled entry survive navigating away and back.
func TestRecallPreservesLiveEdits(t *testing.T) {
	h := New()
	h.Add("old")
	h.Add("") // working entry
	h.ResetRecall()

	h.Recall(Prev, "typed but not submitted")
	line, ok := h.Recall(Next, "old")
	if !ok || line != "typed but not submitted" {
		t.Errorf("expected live edits preserved in working entry, got %q ok=%v", line, ok)
	}
}

func TestRecallSingleEntry(t *testing.T) {
	h := New()
	h.Add("")
	h.ResetRecall()
	if _, ok := h.Recall(Prev, ""); ok {
		t.Error("Recall with only the working entry should report no movement")
	}
}
