package editor

import (
	"github.com/kobzarvs/kilovi/internal/buffer"
	"github.com/kobzarvs/kilovi/internal/logger"
)

// handleVisual clears the selection with the geometry from before the key
// and re-tags it with the geometry after, unless the key left VISUAL.
func (e *Editor) handleVisual(ev Event) {
	e.doc.ResetSelection(e.anchor, e.pos())
	e.visualKey(ev)
	if e.mode == ModeVisual && e.prompt == nil {
		e.doc.HighlightSelection(e.anchor, e.pos())
	}
}

func (e *Editor) visualKey(ev Event) {
	if e.pending != 0 {
		e.resolvePending(ev)
		return
	}
	if e.takeCount(ev) {
		return
	}
	if ev.Key == KeyEscape || ev.isCtrl('l') || ev.isRune('v') {
		e.setMode(ModeNormal)
		return
	}
	if ev.Alt && ev.Key == KeyUp {
		e.expandSelection()
		return
	}
	if ev.Alt && ev.Key == KeyDown {
		e.shrinkSelection()
		return
	}

	n := e.consumeCount()
	if e.motion(ev, n) {
		return
	}
	switch {
	case ev.isCtrl('s'):
		e.save()
	case ev.isRune('y'):
		e.yankSelection()
		e.setMode(ModeNormal)
	case ev.isRune('d'), ev.isRune('x'):
		e.deleteSelection()
		e.setMode(ModeNormal)
	case ev.isRune('/'):
		e.startSearch()
	case ev.isRune('g'), ev.isRune('G'), ev.isRune('f'), ev.isRune('F'):
		e.pending = ev.Rune
		e.pendingCount = n
	}
}

func (e *Editor) selection() buffer.Span {
	return buffer.NewSpan(e.anchor, e.pos())
}

func (e *Editor) yankSelection() {
	e.writeClipboard(e.doc.ExtractSpan(e.selection()))
}

func (e *Editor) deleteSelection() {
	s := e.selection()
	if s.Empty() {
		return
	}
	e.writeClipboard(e.doc.ExtractSpan(s))
	var at buffer.Pos
	e.mutate(func() { at = e.doc.DeleteSpan(s) })
	e.setPos(at)
}

// expandSelection grows the selection to the next enclosing syntax node.
func (e *Editor) expandSelection() {
	if e.nodeStackFunc == nil || e.filename == "" {
		e.setStatus("syntax tree not available")
		return
	}
	if len(e.selectionScopeStack) == 0 {
		stack := e.nodeStackFunc(e.filename, e.cursor.Row, e.byteOffset())
		if len(stack) == 0 {
			e.setStatus("no syntax node at cursor")
			return
		}
		e.selectionScopeStack = stack
		e.selectionScopeIndex = 0
	}
	if e.selectionScopeIndex < len(e.selectionScopeStack) {
		e.selectNode(e.selectionScopeStack[e.selectionScopeIndex])
		e.selectionScopeIndex++
	}
}

// shrinkSelection steps back to the previous, smaller node. Past the
// innermost node the selection collapses onto the cursor.
func (e *Editor) shrinkSelection() {
	if len(e.selectionScopeStack) == 0 {
		return
	}
	if e.selectionScopeIndex > 1 {
		e.selectionScopeIndex--
		e.selectNode(e.selectionScopeStack[e.selectionScopeIndex-1])
		return
	}
	e.selectionScopeStack = nil
	e.selectionScopeIndex = 0
	e.anchor = e.pos()
}

func (e *Editor) selectNode(nr NodeRange) {
	logger.Debug("select node", "start", nr.StartRow, "end", nr.EndRow)
	e.anchor = buffer.Pos{Row: nr.StartRow, Byte: nr.StartCol}
	e.setPos(buffer.Pos{Row: nr.EndRow, Byte: nr.EndCol})
}
