package editor

import (
	"github.com/kobzarvs/kilovi/internal/buffer"
)

func (e *Editor) byteOffset() int {
	return e.doc.ByteOffset(e.cursor.Col)
}

func (e *Editor) setByte(b int) {
	e.cursor.Col = e.doc.GutterWidth() + b
}

func (e *Editor) pos() buffer.Pos {
	return buffer.Pos{Row: e.cursor.Row, Byte: e.byteOffset()}
}

func (e *Editor) setPos(p buffer.Pos) {
	e.cursor.Row = p.Row
	e.setByte(p.Byte)
	e.clampCursor()
}

func (e *Editor) rowLen(row int) int {
	if r := e.doc.Row(row); r != nil {
		return r.Len()
	}
	return 0
}

// clampCursor keeps the row within [0, Len()] and the column within the
// row. Row Len() is the virtual line past the end.
func (e *Editor) clampCursor() {
	if e.cursor.Row > e.doc.Len() {
		e.cursor.Row = e.doc.Len()
	}
	if e.cursor.Row < 0 {
		e.cursor.Row = 0
	}
	e.cursor.Col = e.doc.ClampColumn(e.cursor.Row, e.cursor.Col)
}

func (e *Editor) moveUp(n int) {
	if e.cursor.Row != 0 {
		e.cursor.Row = max(e.cursor.Row-n, 0)
	}
	e.clampCursor()
}

func (e *Editor) moveDown(n int) {
	if e.cursor.Row < e.doc.Len() {
		e.cursor.Row = min(e.cursor.Row+n, e.doc.Len())
	}
	e.clampCursor()
}

// moveLeft wraps to the end of the previous row from column zero.
func (e *Editor) moveLeft(n int) {
	if b := e.byteOffset(); b > 0 {
		e.setByte(max(b-n, 0))
	} else if e.cursor.Row > 0 {
		e.cursor.Row--
		e.setByte(e.rowLen(e.cursor.Row))
	}
	e.clampCursor()
}

// moveRight wraps to the start of the next row from the end of a row.
func (e *Editor) moveRight(n int) {
	if e.cursor.Row < e.doc.Len() {
		b, size := e.byteOffset(), e.rowLen(e.cursor.Row)
		if b < size {
			e.setByte(b + n)
		} else if b == size {
			e.cursor.Row++
			e.setByte(0)
		}
	}
	e.clampCursor()
}

func (e *Editor) moveLineStart() {
	e.setByte(0)
}

func (e *Editor) moveLineEnd() {
	if e.cursor.Row < e.doc.Len() {
		e.setByte(e.rowLen(e.cursor.Row))
	}
}

// moveFirstNonBlank goes to the first byte of the row that is not a space
// or tab, or the end of a blank row.
func (e *Editor) moveFirstNonBlank() {
	r := e.doc.Row(e.cursor.Row)
	if r == nil {
		return
	}
	e.setByte(indentLen(r.Raw))
}

// moveScreenTop puts the cursor at the scroll offset and replays the
// single-row up motion once per screen row, paging the view up.
func (e *Editor) moveScreenTop() {
	e.cursor.Row = e.rowoff
	for i := 0; i < e.screenRows; i++ {
		e.moveUp(1)
	}
}

// moveScreenBottom is the downward counterpart of moveScreenTop.
func (e *Editor) moveScreenBottom() {
	e.cursor.Row = min(e.rowoff+e.screenRows-1, e.doc.Len())
	for i := 0; i < e.screenRows; i++ {
		e.moveDown(1)
	}
}

// motion applies the motion bound to ev, if any, count times. It reports
// whether ev was a motion.
func (e *Editor) motion(ev Event, count int) bool {
	switch {
	case ev.Key == KeyLeft && !ev.Alt, ev.isRune('h'):
		e.moveLeft(count)
	case ev.Key == KeyRight && !ev.Alt, ev.isRune('l'):
		e.moveRight(count)
	case ev.Key == KeyUp && !ev.Alt, ev.isRune('k'):
		e.moveUp(count)
	case ev.Key == KeyDown && !ev.Alt, ev.isRune('j'):
		e.moveDown(count)
	case ev.Key == KeyHome, ev.isRune('0'):
		e.moveLineStart()
	case ev.Key == KeyEnd, ev.isRune('$'):
		e.moveLineEnd()
	case ev.Key == KeyPageUp:
		e.moveScreenTop()
	case ev.Key == KeyPageDown:
		e.moveScreenBottom()
	default:
		return false
	}
	return true
}

// scroll adjusts the scroll offsets so the cursor is on screen.
func (e *Editor) scroll() {
	if e.cursor.Row < e.rowoff {
		e.rowoff = e.cursor.Row
	}
	if e.cursor.Row >= e.rowoff+e.screenRows {
		e.rowoff = e.cursor.Row - e.screenRows + 1
	}
	rx := e.doc.RawToRender(e.cursor.Row, e.byteOffset())
	cols := e.screenCols - e.doc.GutterWidth()
	if cols < 1 {
		cols = 1
	}
	if rx < e.coloff {
		e.coloff = rx
	}
	if rx >= e.coloff+cols {
		e.coloff = rx - cols + 1
	}
}

func indentLen(raw []byte) int {
	n := 0
	for n < len(raw) && (raw[n] == ' ' || raw[n] == '\t') {
		n++
	}
	return n
}
