package buffer

import (
	"bytes"
	"strings"
)

// ExtractSpan returns the text covered by s, rows joined by newlines.
func (d *Document) ExtractSpan(s Span) string {
	var sb strings.Builder
	for y := s.Start.Row; y <= s.End.Row; y++ {
		if y > s.Start.Row {
			sb.WriteByte('\n')
		}
		r := d.Row(y)
		if r == nil {
			continue
		}
		from, to := 0, len(r.Raw)
		if y == s.Start.Row {
			from = clamp(s.Start.Byte, 0, len(r.Raw))
		}
		if y == s.End.Row {
			to = clamp(s.End.Byte, 0, len(r.Raw))
		}
		if to > from {
			sb.Write(r.Raw[from:to])
		}
	}
	return sb.String()
}

// ExtractLine returns the raw bytes of row verbatim.
func (d *Document) ExtractLine(row int) string {
	r := d.Row(row)
	if r == nil {
		return ""
	}
	return string(r.Raw)
}

// DeleteSpan removes the text covered by s and joins its boundary rows.
// It returns the position where the span started.
func (d *Document) DeleteSpan(s Span) Pos {
	first := d.Row(s.Start.Row)
	if first == nil || s.Empty() {
		return s.Start
	}
	head := clamp(s.Start.Byte, 0, len(first.Raw))
	var tail []byte
	if s.End.Row == s.Start.Row {
		tail = first.Raw[clamp(s.End.Byte, head, len(first.Raw)):]
	} else if last := d.Row(s.End.Row); last != nil {
		tail = last.Raw[clamp(s.End.Byte, 0, len(last.Raw)):]
	}
	raw := make([]byte, 0, head+len(tail))
	raw = append(raw, first.Raw[:head]...)
	raw = append(raw, tail...)

	last := s.End.Row
	if last >= d.Len() {
		last = d.Len() - 1
	}
	for y := last; y > s.Start.Row; y-- {
		_ = d.DeleteRow(y)
	}
	d.SetRaw(s.Start.Row, raw)
	return Pos{Row: s.Start.Row, Byte: head}
}

// SplitText breaks pasted text into lines on \n, \r\n and \r.
func SplitText(text string) [][]byte {
	b := []byte(text)
	var lines [][]byte
	start := 0
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\n':
			lines = append(lines, b[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, b[start:i])
			if i+1 < len(b) && b[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, b[start:])
}

// InsertText splices text at (row, at). The first line joins the current
// row, later lines become new rows, and the original tail of the row is
// re-appended to the last one. It returns the position just after the
// inserted text.
func (d *Document) InsertText(row, at int, text string) Pos {
	if row >= d.Len() {
		row = d.Len()
		_ = d.InsertRow(row, nil)
	}
	if row < 0 {
		row = 0
	}
	lines := SplitText(text)
	r := d.rows[row]
	at = clamp(at, 0, len(r.Raw))
	tail := bytes.Clone(r.Raw[at:])

	if len(lines) == 1 {
		d.InsertBytes(row, at, lines[0])
		return Pos{Row: row, Byte: at + len(lines[0])}
	}

	head := make([]byte, 0, at+len(lines[0]))
	head = append(head, r.Raw[:at]...)
	head = append(head, lines[0]...)
	d.SetRaw(row, head)
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if i == len(lines)-1 {
			line = append(bytes.Clone(line), tail...)
		}
		_ = d.InsertRow(row+i, line)
	}
	lastLen := len(lines[len(lines)-1])
	return Pos{Row: row + len(lines) - 1, Byte: lastLen}
}
