package minline

import (
	"io"

	"minline/history"
)

func ctrl(c byte) byte {
	return c & 0x1f
}

const (
	keyEnter     = 13
	keyEscape    = 27
	keyBackspace = 127
)

// bindDefaults installs the built-in emacs-style bindings.
func bindDefaults(ed *Editor) {
	for i := 32; i < 256; i++ {
		ed.BindKey(byte(i), insertSelf)
	}

	ed.BindKey(ctrl('A'), cursorHome)
	ed.BindKey(ctrl('B'), cursorLeft)
	ed.BindKey(ctrl('C'), abortLine)
	ed.BindKey(ctrl('D'), deleteOrEOF)
	ed.BindKey(ctrl('E'), cursorEnd)
	ed.BindKey(ctrl('F'), cursorRight)
	ed.BindKey(ctrl('H'), deleteLeft)
	ed.BindKey(ctrl('K'), killToEnd)
	ed.BindKey(ctrl('L'), clearScreen)
	ed.BindKey(ctrl('N'), historyNext)
	ed.BindKey(ctrl('P'), historyPrev)
	ed.BindKey(ctrl('T'), transpose)
	ed.BindKey(ctrl('U'), killToStart)
	ed.BindKey(ctrl('W'), deletePrevWord)

	ed.BindKey(keyEnter, submitLine)
	ed.BindKey(keyBackspace, deleteLeft)

	ed.BindSeq("\x1b[2~", ignoreKey) // Insert
	ed.BindSeq("\x1b[3~", deleteRight)
	ed.BindSeq("\x1b[A", historyPrev)
	ed.BindSeq("\x1b[B", historyNext)
	ed.BindSeq("\x1b[C", cursorRight)
	ed.BindSeq("\x1b[D", cursorLeft)
	ed.BindSeq("\x1b[H", cursorHome)
	ed.BindSeq("\x1b[F", cursorEnd)
	ed.BindSeq("\x1bOH", cursorHome)
	ed.BindSeq("\x1bOF", cursorEnd)
}

func insertSelf(ed *Editor, key string) Result {
	return ed.editInsert(key[0])
}

// ignoreKey swallows a key. Handy for unhandled escape sequences.
func ignoreKey(ed *Editor, key string) Result {
	return Result{}
}

func submitLine(ed *Editor, key string) Result {
	return Result{Done: true}
}

// abortLine clears the whole line and ends the session, so Ctrl-C
// yields an empty submission rather than a half-typed one.
func abortLine(ed *Editor, key string) Result {
	return Result{Done: true, Refresh: ed.state.buf.Clear()}
}

// deleteOrEOF deletes to the right, or on an empty line reports end of
// input.
func deleteOrEOF(ed *Editor, key string) Result {
	if ed.state.buf.Len() > 0 {
		return deleteRight(ed, key)
	}
	return Result{Err: io.EOF}
}

func deleteRight(ed *Editor, key string) Result {
	return Result{Refresh: ed.state.buf.DeleteForward()}
}

func deleteLeft(ed *Editor, key string) Result {
	return Result{Refresh: ed.state.buf.DeleteBackward()}
}

func cursorHome(ed *Editor, key string) Result {
	return Result{CursorRefresh: ed.state.buf.Home()}
}

func cursorEnd(ed *Editor, key string) Result {
	return Result{CursorRefresh: ed.state.buf.End()}
}

func cursorLeft(ed *Editor, key string) Result {
	return Result{CursorRefresh: ed.state.buf.Left()}
}

func cursorRight(ed *Editor, key string) Result {
	return Result{CursorRefresh: ed.state.buf.Right()}
}

func transpose(ed *Editor, key string) Result {
	return Result{Refresh: ed.state.buf.Transpose()}
}

func killToStart(ed *Editor, key string) Result {
	return Result{Refresh: ed.state.buf.KillToStart()}
}

func killToEnd(ed *Editor, key string) Result {
	return Result{Refresh: ed.state.buf.KillToEnd()}
}

func deletePrevWord(ed *Editor, key string) Result {
	return Result{Refresh: ed.state.buf.DeleteWordBackward()}
}

func clearScreen(ed *Editor, key string) Result {
	if err := ed.ClearScreen(); err != nil {
		return Result{Err: err}
	}
	return Result{Refresh: true}
}

func historyPrev(ed *Editor, key string) Result {
	return recallHistory(ed, history.Prev)
}

func historyNext(ed *Editor, key string) Result {
	return recallHistory(ed, history.Next)
}

func recallHistory(ed *Editor, dir history.Direction) Result {
	line, ok := ed.hist.Recall(dir, ed.state.buf.Text())
	if !ok {
		return Result{}
	}
	ed.state.buf.Set(line)
	return Result{Refresh: true}
}
