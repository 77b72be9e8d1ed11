package buffer

// Pos addresses a byte inside the document.
type Pos struct {
	Row  int
	Byte int
}

func (p Pos) Before(q Pos) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Byte < q.Byte
}

// Span is a half-open range [Start, End) in document order.
type Span struct {
	Start Pos
	End   Pos
}

// NewSpan orders the two endpoints of a selection.
func NewSpan(a, b Pos) Span {
	if b.Before(a) {
		a, b = b, a
	}
	return Span{Start: a, End: b}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// HighlightSelection tags the span between anchor and cursor as Selected.
func (d *Document) HighlightSelection(anchor, cursor Pos) {
	d.markSpan(NewSpan(anchor, cursor), Selected)
}

// ResetSelection clears the same geometry HighlightSelection would tag.
// Callers pass the geometry from before the cursor moved.
func (d *Document) ResetSelection(anchor, cursor Pos) {
	d.markSpan(NewSpan(anchor, cursor), Unselected)
}

// ClearSelection drops every selection mark in the document.
func (d *Document) ClearSelection() {
	for _, r := range d.rows {
		r.Selection = resetMarks(r.Selection, len(r.Render))
	}
}

func (d *Document) markSpan(s Span, m Mark) {
	last := s.End.Row
	if last >= len(d.rows) {
		last = len(d.rows) - 1
	}
	for y := s.Start.Row; y <= last; y++ {
		if y < 0 {
			continue
		}
		r := d.rows[y]
		from, to := 0, len(r.Raw)
		if y == s.Start.Row {
			from = clamp(s.Start.Byte, 0, len(r.Raw))
		}
		if y == s.End.Row {
			to = clamp(s.End.Byte, 0, len(r.Raw))
		}
		if to < from {
			continue
		}
		rf := d.RawToRender(y, from)
		rt := d.RawToRender(y, to)
		for i := rf; i < rt; i++ {
			r.Selection[i] = m
		}
	}
}
