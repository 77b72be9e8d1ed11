package editor

import (
	"strings"

	"github.com/kobzarvs/kilovi/internal/logger"
)

func (e *Editor) writeClipboard(text string) {
	if e.clip == nil {
		return
	}
	if err := e.clip.WriteText(text); err != nil {
		logger.Warn("clipboard write", "err", err)
		e.setStatus("Clipboard error: %s", err)
	}
}

// yankLines copies n rows starting at the cursor row, each followed by a
// newline.
func (e *Editor) yankLines(n int) {
	if e.cursor.Row >= e.doc.Len() {
		return
	}
	end := min(e.cursor.Row+n, e.doc.Len())
	var b strings.Builder
	for i := e.cursor.Row; i < end; i++ {
		b.WriteString(e.doc.ExtractLine(i))
		b.WriteByte('\n')
	}
	e.writeClipboard(b.String())
}

// paste inserts the clipboard text n times at the cursor. The cursor does
// not move.
func (e *Editor) paste(n int) {
	if e.clip == nil {
		return
	}
	text, err := e.clip.ReadText()
	if err != nil {
		logger.Warn("clipboard read", "err", err)
		e.setStatus("Clipboard error: %s", err)
		return
	}
	if text == "" {
		return
	}
	row, b := e.cursor.Row, e.byteOffset()
	e.mutate(func() {
		for i := 0; i < n; i++ {
			e.doc.InsertText(row, b, text)
		}
	})
	e.clampCursor()
}
