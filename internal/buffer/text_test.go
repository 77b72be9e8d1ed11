package buffer

import (
	"strings"
	"testing"
)

func TestExtractSpanBothDirections(t *testing.T) {
	d := newTestDocument("hello world")
	a := d.ExtractSpan(NewSpan(Pos{0, 2}, Pos{0, 5}))
	b := d.ExtractSpan(NewSpan(Pos{0, 5}, Pos{0, 2}))
	if a != "llo" || b != "llo" {
		t.Fatalf("ExtractSpan = %q / %q, want %q", a, b, "llo")
	}
}

func TestExtractSpanMultiRow(t *testing.T) {
	d := newTestDocument("first", "second", "third")
	got := d.ExtractSpan(NewSpan(Pos{0, 2}, Pos{2, 3}))
	if got != "rst\nsecond\nthi" {
		t.Fatalf("ExtractSpan = %q", got)
	}
	if got := d.ExtractLine(1); got != "second" {
		t.Fatalf("ExtractLine = %q", got)
	}
	if got := d.ExtractLine(9); got != "" {
		t.Fatalf("ExtractLine(9) = %q, want empty", got)
	}
}

func TestSplitText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc", "abc"},
		{"a\nb", "a|b"},
		{"a\r\nb", "a|b"},
		{"a\rb", "a|b"},
		{"a\n", "a|"},
		{"\n\n", "||"},
	}
	for _, tt := range tests {
		lines := SplitText(tt.in)
		parts := make([]string, len(lines))
		for i, l := range lines {
			parts[i] = string(l)
		}
		if got := strings.Join(parts, "|"); got != tt.want {
			t.Fatalf("SplitText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInsertTextSingleLine(t *testing.T) {
	d := newTestDocument("hello")
	end := d.InsertText(0, 2, "XY")
	if got := string(d.Row(0).Raw); got != "heXYllo" {
		t.Fatalf("raw = %q", got)
	}
	if end != (Pos{0, 4}) {
		t.Fatalf("end = %+v, want {0 4}", end)
	}
}

func TestInsertTextMultiLine(t *testing.T) {
	d := newTestDocument("hello", "tail")
	end := d.InsertText(0, 2, "A\r\nB\nC")
	if got := strings.Join(rowStrings(d), ","); got != "heA,B,Cllo,tail" {
		t.Fatalf("rows = %q", got)
	}
	if end != (Pos{2, 1}) {
		t.Fatalf("end = %+v, want {2 1}", end)
	}
	checkRows(t, d)
}

func TestInsertTextTrailingNewline(t *testing.T) {
	d := newTestDocument("abc")
	d.InsertText(0, 0, "line\n")
	if got := strings.Join(rowStrings(d), ","); got != "line,abc" {
		t.Fatalf("rows = %q", got)
	}
}

func TestInsertTextIntoEmptyDocument(t *testing.T) {
	d := newTestDocument()
	d.InsertText(0, 0, "x\ny")
	if got := strings.Join(rowStrings(d), ","); got != "x,y" {
		t.Fatalf("rows = %q", got)
	}
}

func TestDeleteSpan(t *testing.T) {
	d := newTestDocument("first", "second", "third")
	pos := d.DeleteSpan(NewSpan(Pos{2, 3}, Pos{0, 2}))
	if pos != (Pos{0, 2}) {
		t.Fatalf("pos = %+v", pos)
	}
	if got := strings.Join(rowStrings(d), ","); got != "fird" {
		t.Fatalf("rows = %q, want %q", got, "fird")
	}

	d = newTestDocument("hello world")
	d.DeleteSpan(NewSpan(Pos{0, 2}, Pos{0, 5}))
	if got := string(d.Row(0).Raw); got != "he world" {
		t.Fatalf("raw = %q", got)
	}
	checkRows(t, d)
}
