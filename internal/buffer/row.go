package buffer

import "github.com/kobzarvs/kilovi/internal/syntax"

// Mark is the selection tag of one rendered byte.
type Mark uint8

const (
	Unselected Mark = iota
	Selected
)

// Row is one line of the document. Raw is authoritative; Render, Syntax
// and Selection are derived from it and always have the same length.
type Row struct {
	Index       int
	Raw         []byte
	Render      []byte
	Syntax      []syntax.Class
	Selection   []Mark
	OpenComment bool

	// block comment state the row was last scanned with
	entry bool
}

func (r *Row) Len() int {
	return len(r.Raw)
}

func expandTabs(dst, raw []byte, width int) []byte {
	if width < 1 {
		width = 1
	}
	dst = dst[:0]
	for _, c := range raw {
		if c == '\t' {
			dst = append(dst, ' ')
			for len(dst)%width != 0 {
				dst = append(dst, ' ')
			}
			continue
		}
		dst = append(dst, c)
	}
	return dst
}

func resetMarks(dst []Mark, n int) []Mark {
	if cap(dst) >= n {
		dst = dst[:n]
	} else {
		dst = make([]Mark, n)
	}
	for i := range dst {
		dst[i] = Unselected
	}
	return dst
}
