package editor

import (
	"bytes"
	"fmt"

	"github.com/kobzarvs/kilovi/internal/syntax"
)

// prompt is the message bar input line. step runs after every key with the
// current input; done runs once when the prompt closes.
type prompt struct {
	format string
	buf    []byte
	step   func(input string, ev Event)
	done   func(input string, ok bool)
}

func (p *prompt) text() string {
	return fmt.Sprintf(p.format, p.buf)
}

func (e *Editor) openPrompt(format string, step func(string, Event), done func(string, bool)) {
	e.prompt = &prompt{format: format, step: step, done: done}
}

func (e *Editor) handlePrompt(ev Event) {
	p := e.prompt
	closed, ok := false, false
	switch {
	case ev.Key == KeyBackspace, ev.Key == KeyDelete, ev.isCtrl('h'):
		if len(p.buf) > 0 {
			p.buf = p.buf[:len(p.buf)-1]
		}
	case ev.Key == KeyEscape:
		closed = true
	case ev.Key == KeyEnter:
		if len(p.buf) > 0 {
			closed, ok = true, true
		}
	case ev.Key == KeyRune && isPrintable(ev.Rune):
		p.buf = append(p.buf, byte(ev.Rune))
	}
	input := string(p.buf)
	if p.step != nil {
		p.step(input, ev)
	}
	if closed {
		e.prompt = nil
		e.statusMessage = ""
		if p.done != nil {
			p.done(input, ok)
		}
	}
}

type searchState struct {
	lastMatch   int
	forward     bool
	savedRow    int
	savedSyntax []syntax.Class

	savedCursor Cursor
	savedRowoff int
	savedColoff int
}

func (e *Editor) startSearch() {
	e.search = searchState{
		lastMatch:   -1,
		forward:     true,
		savedRow:    -1,
		savedCursor: e.cursor,
		savedRowoff: e.rowoff,
		savedColoff: e.coloff,
	}
	e.openPrompt("Search: %s (Use ESC/Arrows/Enter)", e.searchStep, e.searchDone)
}

// searchStep is the incremental search callback. Arrow keys step between
// matches, any other key restarts the scan from the top.
func (e *Editor) searchStep(query string, ev Event) {
	s := &e.search
	e.restoreMatchHighlight()

	switch ev.Key {
	case KeyEnter, KeyEscape:
		s.lastMatch = -1
		s.forward = true
		return
	case KeyRight, KeyDown:
		s.forward = true
	case KeyLeft, KeyUp:
		s.forward = false
	default:
		s.lastMatch = -1
		s.forward = true
	}
	if s.lastMatch == -1 {
		s.forward = true
	}
	if query == "" {
		return
	}

	row, at, ok := e.scanRows(s.lastMatch, []byte(query), s.forward)
	if !ok {
		return
	}
	s.lastMatch = row
	e.cursor.Row = row
	e.setByte(e.doc.RenderOffsetToRaw(row, at))
	e.rowoff = row

	r := e.doc.Row(row)
	s.savedRow = row
	s.savedSyntax = append(s.savedSyntax[:0], r.Syntax...)
	for i := at; i < at+len(query) && i < len(r.Syntax); i++ {
		r.Syntax[i] = syntax.Match
	}
}

// scanRows looks for query in the rendered rows after from, wrapping once
// around the document. It returns the row and render offset of the hit.
func (e *Editor) scanRows(from int, query []byte, forward bool) (int, int, bool) {
	n := e.doc.Len()
	current := from
	for i := 0; i < n; i++ {
		if forward {
			current++
		} else {
			current--
		}
		if current == -1 {
			current = n - 1
		} else if current == n {
			current = 0
		}
		if at := bytes.Index(e.doc.Row(current).Render, query); at >= 0 {
			return current, at, true
		}
	}
	return 0, 0, false
}

func (e *Editor) restoreMatchHighlight() {
	s := &e.search
	if s.savedRow < 0 {
		return
	}
	if r := e.doc.Row(s.savedRow); r != nil && len(r.Syntax) == len(s.savedSyntax) {
		copy(r.Syntax, s.savedSyntax)
	}
	s.savedRow = -1
}

func (e *Editor) searchDone(query string, ok bool) {
	s := e.search
	if !ok {
		e.cursor = s.savedCursor
		e.cursor.Col = max(e.cursor.Col, e.doc.GutterWidth())
		e.rowoff = s.savedRowoff
		e.coloff = s.savedColoff
		e.clampCursor()
		return
	}
	e.lastQuery = query
}

// searchRepeat jumps to the n-th next or previous occurrence of the last
// accepted query, starting from the cursor.
func (e *Editor) searchRepeat(forward bool, n int) {
	if e.lastQuery == "" {
		return
	}
	query := []byte(e.lastQuery)
	for i := 0; i < n; i++ {
		row, at, ok := e.findFrom(e.cursor.Row, e.doc.RawToRender(e.cursor.Row, e.byteOffset()), query, forward)
		if !ok {
			e.setStatus("Pattern not found: %s", e.lastQuery)
			return
		}
		e.cursor.Row = row
		e.setByte(e.doc.RenderOffsetToRaw(row, at))
	}
}

// findFrom searches the rendered text strictly after (or before) render
// column col of row, wrapping around the document once.
func (e *Editor) findFrom(row, col int, query []byte, forward bool) (int, int, bool) {
	n := e.doc.Len()
	if n == 0 {
		return 0, 0, false
	}
	if row >= n {
		row = n - 1
		col = len(e.doc.Row(row).Render)
	}
	render := e.doc.Row(row).Render
	if forward {
		if col+1 <= len(render) {
			if at := bytes.Index(render[col+1:], query); at >= 0 {
				return row, col + 1 + at, true
			}
		}
	} else if at := bytes.LastIndex(render[:min(col+len(query)-1, len(render))], query); at >= 0 && at < col {
		return row, at, true
	}

	for i := 1; i <= n; i++ {
		cur := row + i
		if !forward {
			cur = row - i
		}
		cur = ((cur % n) + n) % n
		render := e.doc.Row(cur).Render
		var at int
		if forward {
			at = bytes.Index(render, query)
		} else {
			at = bytes.LastIndex(render, query)
		}
		if at >= 0 {
			return cur, at, true
		}
	}
	return 0, 0, false
}
