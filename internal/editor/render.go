package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/kilovi/internal/buffer"
	"github.com/kobzarvs/kilovi/internal/config"
	"github.com/kobzarvs/kilovi/internal/syntax"
)

type styles struct {
	main             tcell.Style
	status           tcell.Style
	message          tcell.Style
	lineNumber       tcell.Style
	lineNumberActive tcell.Style
	selection        tcell.Style
	searchMatch      tcell.Style
	control          tcell.Style
	classes          [syntax.Match + 1]tcell.Style
}

func newStyles(t config.Theme) styles {
	mainFg := parseColor(t.Foreground, tcell.ColorDefault)
	mainBg := parseColor(t.Background, tcell.ColorDefault)
	main := tcell.StyleDefault.Foreground(mainFg).Background(mainBg)
	fg := func(name string, fallback tcell.Color) tcell.Style {
		return main.Foreground(parseColor(name, fallback))
	}

	st := styles{
		main: main,
		status: tcell.StyleDefault.
			Foreground(parseColor(t.StatuslineForeground, tcell.ColorBlack)).
			Background(parseColor(t.StatuslineBackground, tcell.ColorSilver)),
		message: tcell.StyleDefault.
			Foreground(parseColor(t.CommandlineForeground, mainFg)).
			Background(parseColor(t.CommandlineBackground, mainBg)),
		lineNumber:       fg(t.LineNumberForeground, tcell.ColorGray),
		lineNumberActive: fg(t.LineNumberActiveForeground, mainFg),
		selection: tcell.StyleDefault.
			Foreground(parseColor(t.SelectionForeground, tcell.ColorBlack)).
			Background(parseColor(t.SelectionBackground, tcell.ColorSilver)),
		searchMatch: tcell.StyleDefault.
			Foreground(parseColor(t.SearchMatchForeground, tcell.ColorBlack)).
			Background(parseColor(t.SearchMatchBackground, tcell.ColorNavy)),
		control: main.Reverse(true),
	}
	st.classes[syntax.Normal] = main
	st.classes[syntax.Comment] = fg(t.SyntaxComment, tcell.ColorTeal)
	st.classes[syntax.Keyword1] = fg(t.SyntaxKeyword, tcell.ColorOlive)
	st.classes[syntax.Keyword2] = fg(t.SyntaxType, tcell.ColorGreen)
	st.classes[syntax.String] = fg(t.SyntaxString, tcell.ColorPurple)
	st.classes[syntax.Number] = fg(t.SyntaxNumber, tcell.ColorMaroon)
	st.classes[syntax.Match] = st.searchMatch
	return st
}

func (st *styles) forByte(class syntax.Class, mark buffer.Mark) tcell.Style {
	if mark == buffer.Selected {
		return st.selection
	}
	if class.IsComment() {
		class = syntax.Comment
	}
	if int(class) < len(st.classes) {
		return st.classes[class]
	}
	return st.main
}

// Render draws the text rows, the status bar and the message bar.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	e.SetSize(w, h)
	e.scroll()

	s.SetStyle(e.styles.main)
	s.Clear()

	for y := 0; y < e.screenRows; y++ {
		filerow := y + e.rowoff
		if filerow >= e.doc.Len() {
			e.drawFiller(s, y, w)
			continue
		}
		e.drawRow(s, y, w, filerow)
	}
	if h >= 2 {
		e.drawStatusBar(s, w, h-2)
	}
	msgY := h - 1
	clearLine(s, msgY, w, e.styles.message)
	msg := runewidth.Truncate(e.StatusMessage(), w, "")
	drawString(s, 0, msgY, msg, e.styles.message)

	if e.prompt != nil {
		s.ShowCursor(min(runewidth.StringWidth(msg), w-1), msgY)
	} else {
		cx := e.doc.ColumnForRawOffset(e.cursor.Row, e.byteOffset()) - e.coloff
		s.ShowCursor(min(cx, w-1), e.cursor.Row-e.rowoff)
	}
	cursorStyle := tcell.CursorStyleSteadyBlock
	if e.mode == ModeInsert || e.prompt != nil {
		cursorStyle = tcell.CursorStyleSteadyBar
	}
	s.SetCursorStyle(cursorStyle)
	s.Show()
}

func (e *Editor) drawFiller(s tcell.Screen, y, w int) {
	if e.doc.Len() != 0 || y != e.screenRows/3 {
		s.SetContent(0, y, '~', nil, e.styles.main)
		return
	}
	welcome := "kilovi editor -- version " + Version
	welcome = runewidth.Truncate(welcome, w, "")
	padding := (w - runewidth.StringWidth(welcome)) / 2
	x := 0
	if padding > 0 {
		s.SetContent(0, y, '~', nil, e.styles.main)
		x = padding
	}
	drawString(s, x, y, welcome, e.styles.main)
}

func (e *Editor) drawRow(s tcell.Screen, y, w, filerow int) {
	gutter := e.doc.GutterWidth()
	if gutter > 0 {
		num := filerow + 1
		style := e.styles.lineNumber
		if filerow == e.cursor.Row {
			style = e.styles.lineNumberActive
		} else if e.opts.RelativeLineNumbers {
			num = filerow - e.cursor.Row
			if num < 0 {
				num = -num
			}
		}
		label := strconv.Itoa(num)
		if len(label) > gutter-1 {
			label = label[len(label)-(gutter-1):]
		}
		drawString(s, 0, y, label, style)
	}

	r := e.doc.Row(filerow)
	x := gutter
	for j := e.coloff; j < len(r.Render) && x < w; j++ {
		c := r.Render[j]
		style := e.styles.forByte(r.Syntax[j], r.Selection[j])
		if c < ' ' || c == 0x7f {
			sym := '?'
			if c <= 26 {
				sym = rune('@' + c)
			}
			s.SetContent(x, y, sym, nil, e.styles.control)
		} else {
			s.SetContent(x, y, rune(c), nil, style)
		}
		x++
	}
}

func (e *Editor) drawStatusBar(s tcell.Screen, w, y int) {
	name := e.filename
	if name == "" {
		name = "[No Name]"
	}
	name = runewidth.Truncate(name, 20, "")
	modified := ""
	if e.doc.Dirty() {
		modified = "(modified)"
	}
	left := fmt.Sprintf("%s - %d lines %s %s", name, e.doc.Len(), modified, e.mode)

	filetype := "no ft"
	if p := e.doc.Profile(); p != nil {
		filetype = p.Name
	}
	right := fmt.Sprintf("%s | %d/%d:%d", filetype, e.cursor.Row+1, e.doc.Len(), e.byteOffset()+1)

	clearLine(s, y, w, e.styles.status)
	drawString(s, 0, y, composeStatusLine(left, right, w), e.styles.status)
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// composeStatusLine places left and right at the two ends of a line of the
// given width. When both do not fit the left side is cut first.
func composeStatusLine(left, right string, width int) string {
	if width <= 0 {
		return ""
	}
	rw := runewidth.StringWidth(right)
	if rw >= width {
		return runewidth.Truncate(right, width, "")
	}
	left = runewidth.Truncate(left, width-rw, "")
	pad := width - runewidth.StringWidth(left) - rw
	return left + strings.Repeat(" ", pad) + right
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
