// Package keymap implements the byte-sequence dispatch trie that resolves
// raw terminal input to key bindings. Multi-byte sequences (arrow keys,
// function keys) arrive one byte at a time, so lookup pulls continuation
// bytes from the input with a bounded wait: a lone Escape press must not
// stall the session, while a real escape sequence gets time to arrive in
// full even over a slow link.
package keymap

import (
	"errors"
	"time"
)

// ContinuationTimeout is how long lookup waits for the next byte of a
// multi-byte sequence before treating the input as a partial sequence.
const ContinuationTimeout = 300 * time.Millisecond

// ErrEmptySequence is returned by Bind for a zero-length key sequence.
var ErrEmptySequence = errors.New("keymap: empty key sequence")

// ByteSource supplies continuation bytes during a lookup. An error return
// (timeout or end of input) ends the walk.
type ByteSource interface {
	ReadByteTimeout(timeout time.Duration) (byte, error)
}

type node[V any] struct {
	bound    bool
	value    V
	children map[byte]*node[V]
}

func (n *node[V]) child(c byte, create bool) *node[V] {
	if n.children == nil {
		if !create {
			return nil
		}
		n.children = make(map[byte]*node[V])
	}
	ch := n.children[c]
	if ch == nil && create {
		ch = &node[V]{}
		n.children[c] = ch
	}
	return ch
}

// Trie maps key byte sequences to bound values. A node may carry both a
// binding and children: a short sequence and a longer one sharing its
// prefix coexist, and the short one wins as soon as it is reached.
type Trie[V any] struct {
	root node[V]
}

// New creates an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{}
}

// Bind inserts or overwrites the binding at the given sequence, creating
// intermediate nodes as needed.
func (t *Trie[V]) Bind(seq []byte, value V) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	n := &t.root
	for _, c := range seq {
		n = n.child(c, true)
	}
	n.bound = true
	n.value = value
	return nil
}

// Lookup walks the trie starting at first. A bound node terminates the
// walk immediately; otherwise continuation bytes are read from src with
// the bounded wait until a binding is found, the path dead-ends, or the
// source times out. It returns the bound value, the final byte consumed,
// and whether a binding was found.
func (t *Trie[V]) Lookup(first byte, src ByteSource) (value V, last byte, ok bool) {
	c := first
	n := &t.root
	for {
		next := n.child(c, false)
		if next == nil {
			return value, c, false
		}
		if next.bound {
			return next.value, c, true
		}
		if len(next.children) == 0 {
			return value, c, false
		}
		b, err := src.ReadByteTimeout(ContinuationTimeout)
		if err != nil {
			return value, c, false
		}
		c = b
		n = next
	}
}
