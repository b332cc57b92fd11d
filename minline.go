// Package minline is an embeddable terminal line editor: it turns the
// raw byte stream of an interactive terminal into a single edited,
// history-aware line, rendering correctly when the line wraps across
// terminal rows, and exposes a byte-sequence key-binding surface so
// callers can extend editing behaviour (tab completion and the like).
package minline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"minline/history"
	"minline/keymap"
	"minline/lineedit"
	"minline/term"
)

// ErrNotTerminal is returned when raw mode is requested on a descriptor
// that is not an interactive terminal.
var ErrNotTerminal = term.ErrNotTerminal

// Result reports what a key handler did and what the session loop must
// do before reading the next byte.
type Result struct {
	// Done ends the editing session; the current buffer is submitted.
	Done bool
	// Refresh requests a full redraw of prompt and line.
	Refresh bool
	// CursorRefresh requests a cursor reposition only; content layout
	// is unchanged.
	CursorRefresh bool
	// Err aborts the session, propagating to the ReadLine caller.
	Err error
}

// Handler reacts to a dispatched key. key holds the textual form of the
// final byte of the matched sequence. State a handler needs beyond the
// editor is captured in its closure.
type Handler func(ed *Editor, key string) Result

// Editor owns one line-editing surface over an input/output stream
// pair. One editing session is active at a time; ReadLine blocks until
// the line is submitted or aborted.
type Editor struct {
	in  *os.File
	out *os.File

	keys *keymap.Trie[Handler]
	hist *history.History

	maskMode bool
	forceTTY bool

	// fallback reader for non-terminal input; created on first use and
	// kept so buffered bytes survive across calls.
	plain *bufio.Reader

	state state
}

// state is the per-ReadLine editing state.
type state struct {
	buf       *lineedit.Editor
	prompt    string
	promptLen int
	width     int

	prevCursor  position
	prevLineEnd position
	// maxRows tracks how many rows the line has occupied so far; a full
	// refresh must clear that many rows.
	maxRows int
}

// New creates an editor reading from in and writing to out, with the
// default emacs-style bindings installed.
func New(in, out *os.File) *Editor {
	ed := &Editor{
		in:   in,
		out:  out,
		keys: keymap.New[Handler](),
		hist: history.New(),
	}
	// An empty buffer from the start keeps the accessors safe to call
	// before the first editing session.
	ed.state.buf = lineedit.New()
	bindDefaults(ed)
	return ed
}

// NewStandard creates an editor on stdin/stdout.
func NewStandard() *Editor {
	return New(os.Stdin, os.Stdout)
}

// BindKey binds a handler to a single key byte.
func (ed *Editor) BindKey(key byte, h Handler) error {
	return ed.keys.Bind([]byte{key}, h)
}

// BindSeq binds a handler to a multi-byte key sequence.
func (ed *Editor) BindSeq(seq string, h Handler) error {
	return ed.keys.Bind([]byte(seq), h)
}

// SetMaskMode enables or disables mask mode: the terminal displays one
// '*' per typed byte instead of the input, for passwords and other
// secrets.
func (ed *Editor) SetMaskMode(enable bool) {
	ed.maskMode = enable
}

// ForceTTY makes ReadLine treat the input as a terminal even when it is
// not one.
func (ed *Editor) ForceTTY() {
	ed.forceTTY = true
}

// History returns the editor's history log.
func (ed *Editor) History() *history.History {
	return ed.hist
}

// AddHistory records a submitted line in the history log.
func (ed *Editor) AddHistory(line string) bool {
	return ed.hist.Add(line)
}

// Width returns the terminal column count, defaulting to 80 when the
// query fails.
func (ed *Editor) Width() int {
	return term.Width(int(ed.out.Fd()))
}

// Line returns the line currently under edit.
func (ed *Editor) Line() string {
	return ed.state.buf.Text()
}

// Point returns the cursor offset into the line under edit.
func (ed *Editor) Point() int {
	return ed.state.buf.Cursor()
}

// End returns the length of the line under edit.
func (ed *Editor) End() int {
	return ed.state.buf.Len()
}

// SetPoint moves the cursor, clamping to the line bounds.
func (ed *Editor) SetPoint(pos int) Result {
	return Result{CursorRefresh: ed.state.buf.SetCursor(pos)}
}

// DeleteText removes the bytes in [start, end) from the line under
// edit, adjusting the cursor. The caller decides whether to refresh.
func (ed *Editor) DeleteText(start, end int) bool {
	return ed.state.buf.DeleteRange(start, end)
}

// Printf writes formatted output through the editor's output stream.
func (ed *Editor) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(ed.out, format, args...)
}

// ClearScreen clears the whole screen and homes the cursor.
func (ed *Editor) ClearScreen() error {
	return ed.write([]byte(escClearScreen))
}

func (ed *Editor) write(p []byte) error {
	return term.Write(int(ed.out.Fd()), p)
}

// Terminals with no cursor-addressing support get the plain reader.
var unsupportedTerms = []string{"dumb", "cons25", "emacs"}

func unsupportedTerm() bool {
	t := os.Getenv("TERM")
	for _, u := range unsupportedTerms {
		if t == u {
			return true
		}
	}
	return false
}

// ReadLine displays the prompt and edits a single line until it is
// submitted or aborted, returning the line without its terminator. When
// the input is not an interactive terminal (or raw mode cannot be
// entered) it falls back to a plain buffered read with no line-length
// limit. io.EOF is returned only when the input ends with nothing
// typed.
func (ed *Editor) ReadLine(prompt string) (string, error) {
	fd := int(ed.in.Fd())
	if !ed.forceTTY && (!term.IsTerminal(fd) || unsupportedTerm()) {
		return ed.readPlain()
	}

	raw, err := term.MakeRaw(fd)
	if err != nil {
		// Raw mode was never entered (attribute query or set failed),
		// so interactive editing is off the table.
		return ed.readPlain()
	}
	defer raw.Restore()

	line, err := ed.edit(prompt)

	// Land the terminal at column 0 of a fresh row so the next prompt
	// does not continue the submitted line.
	if werr := ed.write([]byte("\n")); werr != nil && err == nil {
		err = werr
	}
	return line, err
}

// readPlain reads until newline or end of input, bypassing raw mode and
// the refresh protocol entirely.
func (ed *Editor) readPlain() (string, error) {
	if ed.plain == nil {
		ed.plain = bufio.NewReader(ed.in)
	}
	line, err := ed.plain.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.EOF
		}
		return line, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// byteSource adapts the input descriptor to the keymap's bounded
// continuation reads.
type byteSource struct {
	fd int
}

func (s byteSource) ReadByteTimeout(timeout time.Duration) (byte, error) {
	return term.ReadByteTimeout(s.fd, timeout)
}
