package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kobzarvs/kilovi/internal/syntax"
)

func newTestDocument(lines ...string) *Document {
	d := NewDocument(Options{IndentWidth: 4, LineNumbers: true})
	raw := make([][]byte, len(lines))
	for i, l := range lines {
		raw[i] = []byte(l)
	}
	d.Load(raw)
	return d
}

func rowStrings(d *Document) []string {
	out := make([]string, d.Len())
	for i, r := range d.Rows() {
		out[i] = string(r.Raw)
	}
	return out
}

func checkRows(t *testing.T, d *Document) {
	t.Helper()
	for i, r := range d.Rows() {
		if r.Index != i {
			t.Fatalf("row %d Index = %d", i, r.Index)
		}
		if len(r.Render) != len(r.Syntax) || len(r.Render) != len(r.Selection) {
			t.Fatalf("row %d lengths render=%d syntax=%d selection=%d", i, len(r.Render), len(r.Syntax), len(r.Selection))
		}
	}
}

func TestLoadIsClean(t *testing.T) {
	d := newTestDocument("a", "b")
	if d.Dirty() {
		t.Fatalf("Dirty = true after Load")
	}
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
	checkRows(t, d)
}

func TestInsertRowOutOfRange(t *testing.T) {
	d := newTestDocument("a")
	if err := d.InsertRow(2, []byte("x")); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("InsertRow(2) err = %v, want ErrOutOfRange", err)
	}
	if err := d.InsertRow(-1, []byte("x")); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("InsertRow(-1) err = %v, want ErrOutOfRange", err)
	}
	if err := d.DeleteRow(1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("DeleteRow(1) err = %v, want ErrOutOfRange", err)
	}
	if d.Dirty() {
		t.Fatalf("failed edits marked the document dirty")
	}
}

func TestInsertDeleteRowRenumbers(t *testing.T) {
	d := newTestDocument("abc", "def")
	if err := d.DeleteRow(0); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	if err := d.InsertRow(0, []byte("abc")); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	got := strings.Join(rowStrings(d), ",")
	if got != "abc,def" {
		t.Fatalf("rows = %q, want %q", got, "abc,def")
	}
	if !d.Dirty() {
		t.Fatalf("Dirty = false after edits")
	}
	checkRows(t, d)

	if err := d.InsertRow(1, []byte("mid")); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	if got := strings.Join(rowStrings(d), ","); got != "abc,mid,def" {
		t.Fatalf("rows = %q", got)
	}
	checkRows(t, d)
}

func TestCharEdits(t *testing.T) {
	d := newTestDocument("hello")
	d.InsertChar(0, 99, '!')
	if got := string(d.Row(0).Raw); got != "hello!" {
		t.Fatalf("raw = %q, want %q", got, "hello!")
	}
	d.InsertChar(0, -3, '>')
	if got := string(d.Row(0).Raw); got != ">hello!" {
		t.Fatalf("raw = %q, want %q", got, ">hello!")
	}
	d.DeleteChar(0, 7)
	d.DeleteChar(0, -1)
	if got := string(d.Row(0).Raw); got != ">hello!" {
		t.Fatalf("out of range delete changed row to %q", got)
	}
	d.DeleteChar(0, 0)
	d.AppendBytes(0, []byte(" world"))
	if got := string(d.Row(0).Raw); got != "hello! world" {
		t.Fatalf("raw = %q", got)
	}
	d.Truncate(0, 5)
	if got := string(d.Row(0).Raw); got != "hello" {
		t.Fatalf("raw = %q, want hello", got)
	}
	checkRows(t, d)
}

func TestRenderExpandsTabs(t *testing.T) {
	d := newTestDocument("a\tb", "\t\tx")
	if got := string(d.Row(0).Render); got != "a   b" {
		t.Fatalf("render = %q, want %q", got, "a   b")
	}
	if got := string(d.Row(1).Render); got != "        x" {
		t.Fatalf("render = %q", got)
	}
	checkRows(t, d)
}

func TestGutterWidth(t *testing.T) {
	d := newTestDocument("1", "2", "3", "4", "5", "6", "7", "8", "9")
	if d.GutterWidth() != 2 {
		t.Fatalf("GutterWidth = %d, want 2", d.GutterWidth())
	}
	_ = d.InsertRow(9, []byte("10"))
	if d.GutterWidth() != 3 {
		t.Fatalf("GutterWidth = %d, want 3", d.GutterWidth())
	}
	_ = d.DeleteRow(0)
	if d.GutterWidth() != 2 {
		t.Fatalf("GutterWidth = %d, want 2", d.GutterWidth())
	}

	off := NewDocument(Options{IndentWidth: 4})
	off.Load([][]byte{[]byte("x")})
	if off.GutterWidth() != 0 {
		t.Fatalf("GutterWidth without line numbers = %d, want 0", off.GutterWidth())
	}
}

func TestBlockCommentCascade(t *testing.T) {
	d := newTestDocument("/* start", "middle", "end */ code")
	d.SetProfile(syntax.NewRegistry().Select("x.c"))

	for i, c := range d.Row(1).Syntax {
		if !c.IsComment() {
			t.Fatalf("row 1 byte %d = %v, want comment", i, c)
		}
	}
	for i := 0; i < len("end"); i++ {
		if !d.Row(2).Syntax[i].IsComment() {
			t.Fatalf("row 2 byte %d = %v, want comment", i, d.Row(2).Syntax[i])
		}
	}
	if c := d.Row(2).Syntax[len("end */ ")]; c != syntax.Normal {
		t.Fatalf("code = %v, want normal", c)
	}

	d.DeleteChar(0, 0)
	d.DeleteChar(0, 0)
	for y := 1; y <= 2; y++ {
		for i, c := range d.Row(y).Syntax {
			if c.IsComment() {
				t.Fatalf("row %d byte %d still comment after removing opener", y, i)
			}
		}
	}

	d.InsertBytes(0, 0, []byte("/*"))
	if !d.Row(1).Syntax[0].IsComment() {
		t.Fatalf("row 1 not comment after restoring opener")
	}
	checkRows(t, d)
}

func TestCascadeAcrossInsertAndDeleteRow(t *testing.T) {
	d := newTestDocument("a", "b", "c")
	d.SetProfile(syntax.NewRegistry().Select("x.c"))
	_ = d.InsertRow(1, []byte("/* open"))
	if !d.Row(2).Syntax[0].IsComment() || !d.Row(3).Syntax[0].IsComment() {
		t.Fatalf("rows after inserted opener not comment")
	}
	_ = d.DeleteRow(1)
	if d.Row(1).Syntax[0].IsComment() || d.Row(2).Syntax[0].IsComment() {
		t.Fatalf("rows still comment after deleting opener")
	}
}

func TestSerializeAndLoadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("one\r\ntwo\n\nthree"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines, err := LoadLines(path)
	if err != nil {
		t.Fatalf("LoadLines: %v", err)
	}
	d := NewDocument(Options{})
	d.Load(lines)
	if got := string(d.Serialize()); got != "one\ntwo\n\nthree\n" {
		t.Fatalf("Serialize = %q", got)
	}

	lines, err = LoadLines(filepath.Join(dir, "missing.txt"))
	if err != nil || len(lines) != 0 {
		t.Fatalf("LoadLines(missing) = %d lines, %v", len(lines), err)
	}
}

func TestVersionCountsChanges(t *testing.T) {
	d := newTestDocument("a")
	v := d.Version()
	d.InsertChar(0, 1, 'b')
	if d.Version() <= v {
		t.Fatalf("Version did not advance after InsertChar")
	}
	v = d.Version()
	if err := d.DeleteRow(0); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	if d.Version() <= v {
		t.Fatalf("Version did not advance after DeleteRow")
	}
	v = d.Version()
	d.ClearSelection()
	if d.Version() != v {
		t.Fatalf("Version advanced without a text change")
	}
}
