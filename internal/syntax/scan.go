package syntax

import "bytes"

const separators = ",.()+-/*=~%<>[];"

// IsSeparator reports whether c ends a token.
func IsSeparator(c byte) bool {
	switch c {
	case 0, ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return bytes.IndexByte([]byte(separators), c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Scan classifies every byte of render. inComment is the block comment
// state carried over from the previous row; the returned bool is the state
// at the end of this row. dst is reused when it has enough capacity.
func Scan(p *Profile, render []byte, inComment bool, dst []Class) ([]Class, bool) {
	n := len(render)
	if dst != nil && cap(dst) >= n {
		dst = dst[:n]
	} else {
		dst = make([]Class, n)
	}
	for i := range dst {
		dst[i] = Normal
	}
	if p == nil {
		return dst, false
	}

	lc := []byte(p.LineComment)
	bs := []byte(p.BlockStart)
	be := []byte(p.BlockEnd)
	block := len(bs) > 0 && len(be) > 0

	prevSep := true
	var quote byte
	i := 0
	for i < n {
		c := render[i]
		prev := Normal
		if i > 0 {
			prev = dst[i-1]
		}

		if len(lc) > 0 && quote == 0 && !inComment && bytes.HasPrefix(render[i:], lc) {
			fill(dst[i:], Comment)
			break
		}

		if block && quote == 0 {
			if inComment {
				dst[i] = MLComment
				if bytes.HasPrefix(render[i:], be) {
					fill(dst[i:i+len(be)], MLComment)
					i += len(be)
					inComment = false
					prevSep = true
					continue
				}
				i++
				continue
			}
			if bytes.HasPrefix(render[i:], bs) {
				fill(dst[i:i+len(bs)], MLComment)
				i += len(bs)
				inComment = true
				continue
			}
		}

		if p.Flags&HighlightStrings != 0 {
			if quote != 0 {
				dst[i] = String
				if c == '\\' && i+1 < n {
					dst[i+1] = String
					i += 2
					continue
				}
				if c == quote {
					quote = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				quote = c
				dst[i] = String
				i++
				continue
			}
		}

		if p.Flags&HighlightNumbers != 0 {
			if (isDigit(c) && (prevSep || prev == Number)) || (c == '.' && prev == Number) {
				dst[i] = Number
				prevSep = false
				i++
				continue
			}
		}

		if prevSep {
			if k := matchKeyword(p.Keywords, render[i:]); k.length > 0 {
				fill(dst[i:i+k.length], k.class)
				i += k.length
				prevSep = false
				continue
			}
		}

		prevSep = IsSeparator(c)
		i++
	}
	return dst, inComment
}

type keywordHit struct {
	length int
	class  Class
}

func matchKeyword(keywords []string, rest []byte) keywordHit {
	for _, kw := range keywords {
		class := Keyword1
		if n := len(kw); n > 0 && kw[n-1] == '|' {
			kw = kw[:n-1]
			class = Keyword2
		}
		if kw == "" || !bytes.HasPrefix(rest, []byte(kw)) {
			continue
		}
		if len(rest) == len(kw) || IsSeparator(rest[len(kw)]) {
			return keywordHit{length: len(kw), class: class}
		}
	}
	return keywordHit{}
}

func fill(dst []Class, c Class) {
	for i := range dst {
		dst[i] = c
	}
}
