package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kobzarvs/kilovi/internal/syntax"
)

var ErrOutOfRange = errors.New("buffer: index out of range")

const DefaultIndentWidth = 8

type Options struct {
	IndentWidth int
	LineNumbers bool
}

// Document is the ordered sequence of rows owned by one editing session.
type Document struct {
	rows    []*Row
	opts    Options
	profile *syntax.Profile
	gutter  int
	dirty   bool
	version uint64
}

func NewDocument(opts Options) *Document {
	if opts.IndentWidth < 1 {
		opts.IndentWidth = DefaultIndentWidth
	}
	d := &Document{opts: opts}
	d.updateGutter()
	return d
}

func (d *Document) Len() int {
	return len(d.rows)
}

// Row returns row i or nil when i is out of range.
func (d *Document) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

func (d *Document) Rows() []*Row {
	return d.rows
}

func (d *Document) Dirty() bool {
	return d.dirty
}

func (d *Document) MarkClean() {
	d.dirty = false
}

// Version increases with every change to the text.
func (d *Document) Version() uint64 {
	return d.version
}

func (d *Document) IndentWidth() int {
	return d.opts.IndentWidth
}

func (d *Document) LineNumbers() bool {
	return d.opts.LineNumbers
}

// GutterWidth is the number of screen columns reserved for line numbers.
func (d *Document) GutterWidth() int {
	return d.gutter
}

func (d *Document) updateGutter() {
	if !d.opts.LineNumbers {
		d.gutter = 0
		return
	}
	d.gutter = len(strconv.Itoa(len(d.rows))) + 1
}

func (d *Document) Profile() *syntax.Profile {
	return d.profile
}

// SetProfile switches the syntax profile and reclassifies every row.
func (d *Document) SetProfile(p *syntax.Profile) {
	d.profile = p
	d.rescanAll()
}

// Load replaces the content with lines and leaves the document clean.
func (d *Document) Load(lines [][]byte) {
	d.rows = make([]*Row, 0, len(lines))
	for i, l := range lines {
		r := &Row{Index: i, Raw: append([]byte(nil), l...)}
		r.Render = expandTabs(r.Render, r.Raw, d.opts.IndentWidth)
		r.Selection = resetMarks(r.Selection, len(r.Render))
		d.rows = append(d.rows, r)
	}
	d.updateGutter()
	d.rescanAll()
	d.dirty = false
	d.version++
}

func (d *Document) InsertRow(at int, b []byte) error {
	if at < 0 || at > len(d.rows) {
		return fmt.Errorf("insert row %d of %d: %w", at, len(d.rows), ErrOutOfRange)
	}
	r := &Row{Index: at, Raw: append([]byte(nil), b...)}
	d.rows = append(d.rows, nil)
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = r
	for i := at + 1; i < len(d.rows); i++ {
		d.rows[i].Index = i
	}
	d.updateGutter()
	d.update(at)
	return nil
}

func (d *Document) DeleteRow(at int) error {
	if at < 0 || at >= len(d.rows) {
		return fmt.Errorf("delete row %d of %d: %w", at, len(d.rows), ErrOutOfRange)
	}
	copy(d.rows[at:], d.rows[at+1:])
	d.rows[len(d.rows)-1] = nil
	d.rows = d.rows[:len(d.rows)-1]
	for i := at; i < len(d.rows); i++ {
		d.rows[i].Index = i
	}
	d.updateGutter()
	d.rescan(at)
	d.dirty = true
	d.version++
	return nil
}

// InsertChar splices c into row at byte offset at, clamped to the row.
func (d *Document) InsertChar(row, at int, c byte) {
	d.InsertBytes(row, at, []byte{c})
}

func (d *Document) InsertBytes(row, at int, b []byte) {
	r := d.Row(row)
	if r == nil {
		return
	}
	at = clamp(at, 0, len(r.Raw))
	raw := make([]byte, 0, len(r.Raw)+len(b))
	raw = append(raw, r.Raw[:at]...)
	raw = append(raw, b...)
	raw = append(raw, r.Raw[at:]...)
	r.Raw = raw
	d.update(row)
}

// DeleteChar removes the byte at offset at. Offsets outside the row are
// ignored.
func (d *Document) DeleteChar(row, at int) {
	r := d.Row(row)
	if r == nil || at < 0 || at >= len(r.Raw) {
		return
	}
	r.Raw = append(r.Raw[:at], r.Raw[at+1:]...)
	d.update(row)
}

func (d *Document) AppendBytes(row int, b []byte) {
	r := d.Row(row)
	if r == nil {
		return
	}
	r.Raw = append(r.Raw, b...)
	d.update(row)
}

// Truncate cuts row to its first n bytes.
func (d *Document) Truncate(row, n int) {
	r := d.Row(row)
	if r == nil || n < 0 || n >= len(r.Raw) {
		return
	}
	r.Raw = r.Raw[:n:n]
	d.update(row)
}

func (d *Document) SetRaw(row int, b []byte) {
	r := d.Row(row)
	if r == nil {
		return
	}
	r.Raw = append([]byte(nil), b...)
	d.update(row)
}

func (d *Document) update(at int) {
	r := d.rows[at]
	r.Render = expandTabs(r.Render, r.Raw, d.opts.IndentWidth)
	r.Selection = resetMarks(r.Selection, len(r.Render))
	d.rescan(at)
	d.dirty = true
	d.version++
}

// rescan reclassifies row at, then keeps going while the next row was
// scanned with a block comment state that no longer matches.
func (d *Document) rescan(at int) {
	for i := at; i < len(d.rows); i++ {
		in := i > 0 && d.rows[i-1].OpenComment
		r := d.rows[i]
		if i > at && r.entry == in {
			return
		}
		r.Syntax, r.OpenComment = syntax.Scan(d.profile, r.Render, in, r.Syntax)
		r.entry = in
	}
}

func (d *Document) rescanAll() {
	for i, r := range d.rows {
		in := i > 0 && d.rows[i-1].OpenComment
		r.Syntax, r.OpenComment = syntax.Scan(d.profile, r.Render, in, r.Syntax)
		r.entry = in
	}
}

// Serialize joins the rows with a newline after each one.
func (d *Document) Serialize() []byte {
	n := 0
	for _, r := range d.rows {
		n += len(r.Raw) + 1
	}
	var buf bytes.Buffer
	buf.Grow(n)
	for _, r := range d.rows {
		buf.Write(r.Raw)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// LoadLines reads path into lines with trailing \r and \n removed. A
// missing file yields no lines and no error.
func LoadLines(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

func ReadLines(r io.Reader) ([][]byte, error) {
	br := bufio.NewReader(r)
	var lines [][]byte
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			lines = append(lines, bytes.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
