package editor

import (
	"github.com/kobzarvs/kilovi/internal/logger"
)

func (e *Editor) handleNormal(ev Event) {
	if e.pending != 0 {
		e.resolvePending(ev)
		return
	}
	if e.takeCount(ev) {
		return
	}
	if ev.Key == KeyEscape || ev.isCtrl('l') {
		e.count = 0
		return
	}

	n := e.consumeCount()
	if e.motion(ev, n) {
		return
	}

	switch {
	case ev.Key == KeyEnter:
		e.moveDown(1)
		return
	case ev.Key == KeyBackspace, ev.Key == KeyDelete, ev.isCtrl('h'):
		e.moveRight(1)
		return
	case ev.isCtrl('s'):
		e.save()
		return
	case ev.Key != KeyRune:
		return
	}

	switch ev.Rune {
	case 'i':
		e.setMode(ModeInsert)
	case 'I':
		e.moveFirstNonBlank()
		e.setMode(ModeInsert)
	case 'a':
		e.setByte(e.byteOffset() + 1)
		e.clampCursor()
		e.setMode(ModeInsert)
	case 'A':
		e.moveLineEnd()
		e.setMode(ModeInsert)
	case 'o':
		e.openRow(true)
		e.setMode(ModeInsert)
	case 'O':
		e.openRow(false)
		e.setMode(ModeInsert)
	case 'v':
		e.enterVisual()
	case 'x':
		for i := 0; i < n; i++ {
			e.deleteForward()
		}
	case '~':
		e.toggleCase(n)
	case 'p':
		e.paste(n)
	case '/':
		e.startSearch()
	case 'n':
		e.searchRepeat(true, n)
	case 'N':
		e.searchRepeat(false, n)
	case 'g', 'G', 'f', 'F', 'y', 'd', 'r':
		e.pending = ev.Rune
		e.pendingCount = n
	case 'u':
		// undo is not supported
	}
}

// resolvePending completes a two-key command. A second key that does not
// complete the command cancels it.
func (e *Editor) resolvePending(ev Event) {
	r, n := e.pending, e.pendingCount
	e.pending, e.pendingCount = 0, 0
	if ev.Key == KeyEscape {
		return
	}
	switch r {
	case 'g':
		if ev.isRune('g') {
			e.moveScreenTop()
		}
	case 'G':
		if ev.isRune('G') {
			e.moveScreenBottom()
		}
	case 'f', 'F':
		if ev.Key == KeyRune && ev.Rune < 0x80 {
			e.findChar(byte(ev.Rune), n, r == 'f')
		}
	case 'y':
		if ev.isRune('y') {
			e.yankLines(n)
		}
	case 'd':
		if ev.isRune('d') {
			e.deleteLines(n)
		}
	case 'r':
		if ev.Key == KeyRune && isPrintable(ev.Rune) {
			e.replaceChars(byte(ev.Rune), n)
		}
	}
}

// findChar moves to the count-th occurrence of c in the current row. With
// fewer occurrences the farthest one found is used.
func (e *Editor) findChar(c byte, count int, forward bool) {
	r := e.doc.Row(e.cursor.Row)
	if r == nil {
		return
	}
	b := e.byteOffset()
	last := -1
	if forward {
		for i := b + 1; i < len(r.Raw); i++ {
			if r.Raw[i] != c {
				continue
			}
			last = i
			if count--; count == 0 {
				break
			}
		}
	} else {
		for i := min(b, len(r.Raw)) - 1; i >= 0; i-- {
			if r.Raw[i] != c {
				continue
			}
			last = i
			if count--; count == 0 {
				break
			}
		}
	}
	if last >= 0 {
		e.setByte(last)
	}
}

func (e *Editor) deleteLines(n int) {
	if e.cursor.Row >= e.doc.Len() {
		return
	}
	n = min(n, e.doc.Len()-e.cursor.Row)
	e.yankLines(n)
	e.mutate(func() {
		for i := 0; i < n; i++ {
			if err := e.doc.DeleteRow(e.cursor.Row); err != nil {
				logger.Debug("delete row", "row", e.cursor.Row, "err", err)
				return
			}
		}
	})
	if e.cursor.Row == e.doc.Len() && e.cursor.Row > 0 {
		e.cursor.Row--
	}
	e.moveFirstNonBlank()
	e.clampCursor()
}

func (e *Editor) replaceChars(c byte, n int) {
	r := e.doc.Row(e.cursor.Row)
	if r == nil {
		return
	}
	b := e.byteOffset()
	if b+n > r.Len() {
		return
	}
	raw := append([]byte(nil), r.Raw...)
	for i := b; i < b+n; i++ {
		raw[i] = c
	}
	e.doc.SetRaw(e.cursor.Row, raw)
	e.setByte(b + n - 1)
}

// toggleCase flips the case of n ASCII letters and moves past them.
func (e *Editor) toggleCase(n int) {
	r := e.doc.Row(e.cursor.Row)
	if r == nil || r.Len() == 0 {
		return
	}
	b := e.byteOffset()
	end := min(b+n, r.Len())
	raw := append([]byte(nil), r.Raw...)
	for i := b; i < end; i++ {
		switch c := raw[i]; {
		case c >= 'a' && c <= 'z':
			raw[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			raw[i] = c - 'A' + 'a'
		}
	}
	e.doc.SetRaw(e.cursor.Row, raw)
	e.setByte(min(end, r.Len()-1))
}

func (e *Editor) enterVisual() {
	e.setMode(ModeVisual)
	e.anchor = e.pos()
	e.doc.HighlightSelection(e.anchor, e.pos())
}

func isPrintable(r rune) bool {
	return r >= ' ' && r < 0x7f
}
