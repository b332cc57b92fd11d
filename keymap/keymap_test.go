package keymap

import (
	"errors"
	"testing"
	"time"
)

// feed replays a fixed byte sequence, then reports timeouts.
type feed struct {
	data []byte
	pos  int
}

var errTimeout = errors.New("timeout")

func (f *feed) ReadByteTimeout(time.Duration) (byte, error) {
	if f.pos >= len(f.data) {
		return 0, errTimeout
	}
	b := f.data[f.pos]
	f.pos++
	return b, nil
}

func TestBindEmpty(t *testing.T) {
	tr := New[string]()
	if err := tr.Bind(nil, "x"); err != ErrEmptySequence {
		t.Errorf("expected ErrEmptySequence, got %v", err)
	}
}

func TestSingleByteBinding(t *testing.T) {
	tr := New[string]()
	tr.Bind([]byte{'a'}, "insert")
	v, last, ok := tr.Lookup('a', &feed{})
	if !ok || v != "insert" {
		t.Fatalf("expected binding 'insert', got %q ok=%v", v, ok)
	}
	if last != 'a' {
		t.Errorf("expected final byte 'a', got %q", last)
	}

	if _, _, ok := tr.Lookup('b', &feed{}); ok {
		t.Error("unbound byte should not resolve")
	}
}

func TestEscapeSequenceDisambiguation(t *testing.T) {
	tr := New[string]()
	tr.Bind([]byte("\x1bOH"), "home-O")
	tr.Bind([]byte("\x1b[H"), "home-bracket")

	v, last, ok := tr.Lookup(0x1b, &feed{data: []byte("OH")})
	if !ok || v != "home-O" {
		t.Fatalf("expected 'home-O', got %q ok=%v", v, ok)
	}
	if last != 'H' {
		t.Errorf("expected final byte 'H', got %q", last)
	}

	v, _, ok = tr.Lookup(0x1b, &feed{data: []byte("[H")})
	if !ok || v != "home-bracket" {
		t.Fatalf("expected 'home-bracket', got %q ok=%v", v, ok)
	}
}

func TestShortSequenceWins(t *testing.T) {
	tr := New[string]()
	tr.Bind([]byte("g"), "short")
	tr.Bind([]byte("gg"), "long")

	// The short binding terminates the walk before any continuation byte
	// is consumed.
	src := &feed{data: []byte("g")}
	v, _, ok := tr.Lookup('g', src)
	if !ok || v != "short" {
		t.Fatalf("expected 'short', got %q ok=%v", v, ok)
	}
	if src.pos != 0 {
		t.Errorf("short binding should not consume continuation bytes, consumed %d", src.pos)
	}
}

func TestPartialSequenceTimesOut(t *testing.T) {
	tr := New[string]()
	tr.Bind([]byte("\x1b[A"), "up")

	// A lone escape: no continuation bytes ever arrive.
	if _, _, ok := tr.Lookup(0x1b, &feed{}); ok {
		t.Error("partial sequence should not resolve")
	}

	// Sequence dead-ends on a byte with no child.
	if _, last, ok := tr.Lookup(0x1b, &feed{data: []byte("[Z")}); ok {
		t.Error("unknown continuation should not resolve")
	} else if last != 'Z' {
		t.Errorf("expected final byte 'Z', got %q", last)
	}
}

func TestOverwriteBinding(t *testing.T) {
	tr := New[string]()
	tr.Bind([]byte("x"), "old")
	tr.Bind([]byte("x"), "new")
	v, _, ok := tr.Lookup('x', &feed{})
	if !ok || v != "new" {
		t.Errorf("expected overwritten binding 'new', got %q ok=%v", v, ok)
	}
}
