package editor

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/kilovi/internal/buffer"
	"github.com/kobzarvs/kilovi/internal/config"
	"github.com/kobzarvs/kilovi/internal/logger"
	"github.com/kobzarvs/kilovi/internal/syntax"
)

const Version = "0.1.0"

const (
	statusTimeout = 5 * time.Second
	maxCount      = 1 << 16
	helpMessage   = "HELP: Ctrl-S = save | Ctrl-Q = quit | / = find"
)

var ErrNoFilename = errors.New("no file name")

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	default:
		return "NORMAL"
	}
}

// Cursor is a screen position. Col includes the line number gutter.
type Cursor struct {
	Row int
	Col int
}

// Clipboard is where yanked text goes and pasted text comes from.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// NodeRange represents a syntax node's position range. Columns are byte
// offsets into the row.
type NodeRange struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// NodeStackFunc returns the syntax nodes enclosing a position, innermost
// first.
type NodeStackFunc func(path string, row, col int) []NodeRange

type Editor struct {
	doc      *buffer.Document
	opts     config.EditorOptions
	registry *syntax.Registry
	clip     Clipboard

	mode   Mode
	cursor Cursor
	anchor buffer.Pos
	rowoff int
	coloff int

	screenRows int
	screenCols int

	count        int
	pending      rune
	pendingCount int
	quitLeft     int

	filename      string
	statusMessage string
	statusTime    time.Time
	now           func() time.Time

	prompt    *prompt
	search    searchState
	lastQuery string

	nodeStackFunc       NodeStackFunc
	selectionScopeStack []NodeRange
	selectionScopeIndex int

	onSave func(path string)

	styles styles
}

func New(cfg config.Config) *Editor {
	opts := cfg.Editor
	if opts.IndentWidth < 1 {
		opts.IndentWidth = buffer.DefaultIndentWidth
	}
	if opts.RelativeLineNumbers {
		opts.LineNumbers = true
	}
	e := &Editor{
		doc: buffer.NewDocument(buffer.Options{
			IndentWidth: opts.IndentWidth,
			LineNumbers: opts.LineNumbers,
		}),
		opts:       opts,
		registry:   syntax.NewRegistry(),
		mode:       ModeNormal,
		quitLeft:   opts.QuitTimes,
		now:        time.Now,
		screenRows: 22,
		screenCols: 80,
		styles:     newStyles(cfg.Theme),
	}
	e.cursor.Col = e.doc.GutterWidth()
	e.setStatus(helpMessage)
	return e
}

func (e *Editor) SetRegistry(r *syntax.Registry) {
	e.registry = r
	e.selectProfile()
}

func (e *Editor) SetClipboard(c Clipboard) {
	e.clip = c
}

func (e *Editor) SetNodeStackFunc(fn NodeStackFunc) {
	e.nodeStackFunc = fn
}

// SetSaveHook registers fn to run after every successful write.
func (e *Editor) SetSaveHook(fn func(path string)) {
	e.onSave = fn
}

func (e *Editor) SetStatusMessage(msg string) {
	e.setStatus("%s", msg)
}

// SetSize records the terminal size. Two rows are reserved for the status
// and message bars.
func (e *Editor) SetSize(w, h int) {
	e.screenCols = w
	e.screenRows = h - 2
	if e.screenRows < 1 {
		e.screenRows = 1
	}
}

func (e *Editor) Document() *buffer.Document { return e.doc }
func (e *Editor) Mode() Mode                 { return e.mode }
func (e *Editor) Cursor() Cursor             { return e.cursor }
func (e *Editor) Filename() string           { return e.filename }

func (e *Editor) Content() string {
	return string(e.doc.Serialize())
}

// CursorPos is the cursor as a row and byte offset.
func (e *Editor) CursorPos() buffer.Pos {
	return e.pos()
}

func (e *Editor) ScrollRow() int { return e.rowoff }

// RestoreCursor places the cursor at a row and byte offset, clamped into
// the document, and restores the scroll offset.
func (e *Editor) RestoreCursor(p buffer.Pos, scrollRow int) {
	e.cursor.Row = p.Row
	e.setByte(p.Byte)
	e.clampCursor()
	if scrollRow >= 0 && scrollRow <= e.cursor.Row {
		e.rowoff = scrollRow
	}
	e.scroll()
}

// OpenFile loads path. A missing file opens an empty document that will be
// created on save.
func (e *Editor) OpenFile(path string) error {
	lines, err := buffer.LoadLines(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	e.filename = path
	e.selectProfile()
	e.doc.Load(lines)
	e.mode = ModeNormal
	e.cursor = Cursor{Col: e.doc.GutterWidth()}
	e.rowoff, e.coloff = 0, 0
	e.count, e.pending = 0, 0
	e.selectionScopeStack = nil
	logger.Info("opened file", "path", path, "rows", e.doc.Len())
	return nil
}

// Reload re-reads the file from disk keeping the cursor where it was.
func (e *Editor) Reload() error {
	if e.filename == "" {
		return ErrNoFilename
	}
	p, top := e.pos(), e.rowoff
	if err := e.OpenFile(e.filename); err != nil {
		return err
	}
	e.RestoreCursor(p, top)
	return nil
}

// Save writes the document to path, or to the current file name when path
// is empty.
func (e *Editor) Save(path string) (int, error) {
	if path == "" {
		if e.filename == "" {
			return 0, ErrNoFilename
		}
		path = e.filename
	}
	data := e.doc.Serialize()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, err
	}
	if path != e.filename {
		e.filename = path
		e.selectProfile()
	}
	e.doc.MarkClean()
	if e.onSave != nil {
		e.onSave(path)
	}
	return len(data), nil
}

func (e *Editor) save() {
	if e.filename == "" {
		e.openPrompt("Save as: %s", nil, func(name string, ok bool) {
			if !ok {
				e.setStatus("Save aborted")
				return
			}
			e.writeFile(name)
		})
		return
	}
	e.writeFile("")
}

func (e *Editor) writeFile(path string) {
	n, err := e.Save(path)
	if err != nil {
		logger.Error("save failed", "path", e.filename, "err", err)
		e.setStatus("Can't save! I/O error: %s", err)
		return
	}
	logger.Info("saved file", "path", e.filename, "bytes", n)
	e.setStatus("%d bytes written to disk", n)
}

func (e *Editor) selectProfile() {
	if !e.opts.Syntax || e.registry == nil {
		e.doc.SetProfile(nil)
		return
	}
	e.doc.SetProfile(e.registry.Select(e.filename))
}

// HandleKey feeds a tcell key event to the editor. It returns true when the
// editor should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	kev, ok := EventFromTcell(ev)
	if !ok {
		return false
	}
	return e.HandleEvent(kev)
}

// HandleEvent processes one key press to completion. It returns true when
// the editor should quit.
func (e *Editor) HandleEvent(ev Event) bool {
	defer e.scroll()

	if ev.isCtrl('q') {
		// an open prompt is cancelled as if Escape was pressed
		if e.prompt != nil {
			e.handlePrompt(KeyEvent(KeyEscape))
			e.rehighlight()
		}
		return e.requestQuit()
	}

	if e.prompt != nil {
		e.handlePrompt(ev)
		e.rehighlight()
		e.quitLeft = e.opts.QuitTimes
		return false
	}

	switch e.mode {
	case ModeInsert:
		e.handleInsert(ev)
	case ModeVisual:
		e.handleVisual(ev)
	default:
		e.handleNormal(ev)
	}
	e.quitLeft = e.opts.QuitTimes
	return false
}

func (e *Editor) rehighlight() {
	if e.prompt == nil && e.mode == ModeVisual {
		e.doc.HighlightSelection(e.anchor, e.pos())
	}
}

func (e *Editor) requestQuit() bool {
	if e.doc.Dirty() && e.quitLeft > 0 {
		e.setStatus("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitLeft)
		e.quitLeft--
		return false
	}
	return true
}

func (e *Editor) setMode(m Mode) {
	if e.mode == ModeVisual && m != ModeVisual {
		e.doc.ClearSelection()
		e.selectionScopeStack = nil
		e.selectionScopeIndex = 0
	}
	e.mode = m
	e.count = 0
	e.pending = 0
}

func (e *Editor) setStatus(format string, args ...any) {
	e.statusMessage = fmt.Sprintf(format, args...)
	e.statusTime = e.now()
}

// StatusMessage is the message bar text, empty once it has expired.
func (e *Editor) StatusMessage() string {
	if e.prompt != nil {
		return e.prompt.text()
	}
	if e.statusMessage == "" || e.now().Sub(e.statusTime) >= statusTimeout {
		return ""
	}
	return e.statusMessage
}

// takeCount accumulates a count prefix digit. A leading 0 is not a digit.
func (e *Editor) takeCount(ev Event) bool {
	if ev.Key != KeyRune {
		return false
	}
	r := ev.Rune
	if !(r >= '1' && r <= '9') && !(r == '0' && e.count > 0) {
		return false
	}
	e.count = e.count*10 + int(r-'0')
	if e.count > maxCount {
		e.count = maxCount
	}
	return true
}

func (e *Editor) consumeCount() int {
	n := e.count
	e.count = 0
	if n < 1 {
		n = 1
	}
	return n
}

func (e *Editor) setPending(r rune) {
	e.pending = r
	e.pendingCount = e.consumeCount()
}

// mutate runs an edit and keeps the cursor on the same byte when the edit
// changes the gutter width.
func (e *Editor) mutate(edit func()) {
	g := e.doc.GutterWidth()
	edit()
	if d := e.doc.GutterWidth() - g; d != 0 {
		e.cursor.Col += d
	}
}
