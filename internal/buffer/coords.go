package buffer

// ByteOffset converts a screen column into a byte offset by removing the
// gutter. The gutter changes with the row count, so this is never cached.
func (d *Document) ByteOffset(col int) int {
	off := col - d.gutter
	if off < 0 {
		return 0
	}
	return off
}

// RawToRender returns the rendered width of the first raw bytes of row.
func (d *Document) RawToRender(row, raw int) int {
	r := d.Row(row)
	if r == nil {
		return 0
	}
	raw = clamp(raw, 0, len(r.Raw))
	width := d.opts.IndentWidth
	col := 0
	for _, c := range r.Raw[:raw] {
		if c == '\t' {
			col += width - col%width
			continue
		}
		col++
	}
	return col
}

// ColumnForRawOffset is the screen column of a raw offset, gutter included.
func (d *Document) ColumnForRawOffset(row, raw int) int {
	return d.RawToRender(row, raw) + d.gutter
}

// RenderOffsetToRaw returns the smallest raw offset whose rendered column is
// at least render. Offsets past the end map to the row length.
func (d *Document) RenderOffsetToRaw(row, render int) int {
	r := d.Row(row)
	if r == nil || render <= 0 {
		return 0
	}
	width := d.opts.IndentWidth
	col := 0
	for i, c := range r.Raw {
		if col >= render {
			return i
		}
		if c == '\t' {
			col += width - col%width
		} else {
			col++
		}
	}
	return len(r.Raw)
}

// ClampColumn pulls col back into [gutter, gutter+len(row)]. The virtual
// row past the end has length zero.
func (d *Document) ClampColumn(row, col int) int {
	n := 0
	if r := d.Row(row); r != nil {
		n = len(r.Raw)
	}
	return clamp(col, d.gutter, d.gutter+n)
}
