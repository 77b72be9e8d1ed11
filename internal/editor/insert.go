package editor

import (
	"bytes"

	"github.com/kobzarvs/kilovi/internal/logger"
)

func (e *Editor) handleInsert(ev Event) {
	switch {
	case ev.Key == KeyEscape, ev.isCtrl('l'):
		e.setMode(ModeNormal)
	case ev.Key == KeyEnter:
		e.insertNewline()
	case ev.Key == KeyBackspace, ev.isCtrl('h'):
		e.deleteBackward()
	case ev.Key == KeyDelete:
		e.deleteForward()
	case ev.Key == KeyTab:
		e.insertTab()
	case ev.isCtrl('c'):
		e.yankLines(1)
	case ev.isCtrl('v'):
		e.paste(1)
	case ev.isCtrl('s'):
		e.save()
	case ev.isCtrl('f'):
		e.startSearch()
	case ev.Key == KeyRune && isPrintable(ev.Rune) && !ev.Alt:
		e.insertChar(byte(ev.Rune))
	case ev.Key != KeyRune:
		e.motion(ev, 1)
	}
}

// insertChar inserts c at the cursor. Typing on the virtual line past the
// end appends a row first.
func (e *Editor) insertChar(c byte) {
	if e.cursor.Row == e.doc.Len() {
		e.mutate(func() { e.insertRow(e.doc.Len(), nil) })
	}
	b := e.byteOffset()
	e.doc.InsertChar(e.cursor.Row, b, c)
	e.setByte(b + 1)
}

func (e *Editor) insertTab() {
	if e.opts.IndentByte() != ' ' {
		e.insertChar('\t')
		return
	}
	for i := 0; i < e.opts.IndentWidth; i++ {
		e.insertChar(' ')
	}
}

// insertNewline splits the row at the cursor. The new row starts with the
// indentation of the old one. At column zero an empty row is opened above.
func (e *Editor) insertNewline() {
	row, b := e.cursor.Row, e.byteOffset()
	if b == 0 {
		e.mutate(func() { e.insertRow(row, nil) })
		e.cursor.Row++
		e.setByte(0)
		return
	}
	r := e.doc.Row(row)
	indent := e.indentOf(r.Raw)
	tail := append(indent, r.Raw[b:]...)
	e.mutate(func() { e.insertRow(row+1, tail) })
	e.doc.Truncate(row, b)
	e.cursor.Row++
	e.setByte(len(indent))
}

// openRow opens an indented row below or above the cursor row.
func (e *Editor) openRow(below bool) {
	var indent []byte
	if r := e.doc.Row(e.cursor.Row); r != nil {
		indent = e.indentOf(r.Raw)
	}
	at := e.cursor.Row
	if below && at < e.doc.Len() {
		at++
	}
	e.mutate(func() { e.insertRow(at, indent) })
	e.cursor.Row = at
	e.setByte(len(indent))
}

// deleteBackward removes the byte left of the cursor. At column zero the
// row is joined onto the previous one.
func (e *Editor) deleteBackward() {
	row, b := e.cursor.Row, e.byteOffset()
	if row >= e.doc.Len() || (b == 0 && row == 0) {
		return
	}
	if b > 0 {
		e.doc.DeleteChar(row, b-1)
		e.setByte(b - 1)
		return
	}
	prev := e.doc.Row(row - 1)
	join := prev.Len()
	e.doc.AppendBytes(row-1, e.doc.Row(row).Raw)
	e.mutate(func() { e.deleteRow(row) })
	e.cursor.Row = row - 1
	e.setByte(join)
}

// deleteForward removes the byte under the cursor. At the end of a row the
// next row is joined onto it.
func (e *Editor) deleteForward() {
	row, b := e.cursor.Row, e.byteOffset()
	r := e.doc.Row(row)
	if r == nil {
		return
	}
	if b < r.Len() {
		e.doc.DeleteChar(row, b)
		e.clampCursor()
		return
	}
	if row+1 < e.doc.Len() {
		e.moveRight(1)
		e.deleteBackward()
	}
}

func (e *Editor) indentOf(raw []byte) []byte {
	c := e.opts.IndentByte()
	n := 0
	for n < len(raw) && raw[n] == c {
		n++
	}
	return bytes.Repeat([]byte{c}, n)
}

func (e *Editor) insertRow(at int, b []byte) {
	if err := e.doc.InsertRow(at, b); err != nil {
		logger.Debug("insert row", "at", at, "err", err)
	}
}

func (e *Editor) deleteRow(at int) {
	if err := e.doc.DeleteRow(at); err != nil {
		logger.Debug("delete row", "at", at, "err", err)
	}
}
