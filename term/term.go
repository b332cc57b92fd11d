// Package term handles raw terminal mode and low-level terminal I/O.
package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DefaultWidth is assumed when the window size query fails or reports
// zero columns.
const DefaultWidth = 80

// ErrNotTerminal is returned when raw mode is requested on a descriptor
// that is not an interactive terminal.
var ErrNotTerminal = errors.New("term: not a terminal")

// IsTerminal reports whether fd refers to an interactive terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Raw holds the terminal attributes saved before entering raw mode. It
// exists so that every code path that enters raw mode can restore the
// terminal before returning control to the caller.
type Raw struct {
	fd    int
	saved *unix.Termios
}

// MakeRaw puts fd into raw mode: no input processing, no echo, no line
// buffering, output post-processing limited to newline translation, and
// a blocking single-byte read discipline. Timing for multi-byte escape
// sequences is handled above this layer, not with an inter-byte timeout
// at the OS level.
func MakeRaw(fd int) (*Raw, error) {
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	saved, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("querying terminal attributes: %w", err)
	}
	raw := *saved
	raw.Iflag = 0
	raw.Oflag = unix.OPOST | unix.ONLCR
	raw.Lflag = 0
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	// TCSETSW drains pending output first, like tcsetattr(TCSADRAIN).
	if err := unix.IoctlSetTermios(fd, unix.TCSETSW, &raw); err != nil {
		return nil, fmt.Errorf("setting terminal attributes: %w", err)
	}
	return &Raw{fd: fd, saved: saved}, nil
}

// Restore puts the terminal back into the mode it was in before MakeRaw.
// It is idempotent and safe to call on a nil guard.
func (r *Raw) Restore() error {
	if r == nil || r.saved == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(r.fd, unix.TCSETSW, r.saved); err != nil {
		return fmt.Errorf("restoring terminal attributes: %w", err)
	}
	r.saved = nil
	return nil
}

// Width returns the column count of the terminal on fd, or DefaultWidth
// when the query fails or reports zero.
func Width(fd int) int {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return DefaultWidth
	}
	return int(ws.Col)
}

// ReadByte blocks until a single byte is available on fd. Interrupted
// system calls are retried transparently. Returns io.EOF at end of input.
func ReadByte(fd int) (byte, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("terminal read: %w", err)
		}
		if n == 0 {
			return 0, io.EOF
		}
		return buf[0], nil
	}
}

// ReadByteTimeout reads a single byte from fd, waiting at most timeout
// for it to become readable. Returns os.ErrDeadlineExceeded on timeout.
func ReadByteTimeout(fd int, timeout time.Duration) (byte, error) {
	if !readable(fd, timeout) {
		return 0, os.ErrDeadlineExceeded
	}
	return ReadByte(fd)
}

func readable(fd int, timeout time.Duration) bool {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(timeout.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		return err == nil && n > 0
	}
}

// Write writes all of p to fd, retrying interrupted and short writes.
func Write(fd int, p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("terminal write: %w", err)
		}
		p = p[n:]
	}
	return nil
}
