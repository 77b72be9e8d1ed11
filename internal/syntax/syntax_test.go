package syntax

import "testing"

func cProfile(t *testing.T) *Profile {
	t.Helper()
	p := NewRegistry().Select("main.c")
	if p == nil {
		t.Fatalf("no profile for main.c")
	}
	return p
}

func classesString(classes []Class) string {
	out := make([]byte, len(classes))
	for i, c := range classes {
		switch c {
		case Normal:
			out[i] = '.'
		case Comment:
			out[i] = 'c'
		case MLComment:
			out[i] = 'm'
		case Keyword1:
			out[i] = 'k'
		case Keyword2:
			out[i] = 't'
		case String:
			out[i] = 's'
		case Number:
			out[i] = 'n'
		case Match:
			out[i] = 'x'
		}
	}
	return string(out)
}

func TestRegistrySelect(t *testing.T) {
	r := NewRegistry(Profile{Name: "py", FileMatch: []string{".py"}})
	tests := []struct {
		name string
		want string
	}{
		{"main.c", "c"},
		{"kilo.h", "c"},
		{"a.cpp", "c"},
		{"main.go", "go"},
		{"script.py", "py"},
		{"README", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := ""
		if p := r.Select(tt.name); p != nil {
			got = p.Name
		}
		if got != tt.want {
			t.Fatalf("Select(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestProfileMatchesSubstring(t *testing.T) {
	p := Profile{FileMatch: []string{"Makefile"}}
	if !p.Matches("src/Makefile") {
		t.Fatalf("Matches(src/Makefile) = false, want true")
	}
	if p.Matches("main.c") {
		t.Fatalf("Matches(main.c) = true, want false")
	}
}

func TestScanNilProfile(t *testing.T) {
	classes, open := Scan(nil, []byte("/* int 12"), true, nil)
	if open {
		t.Fatalf("open = true, want false")
	}
	if got := classesString(classes); got != "........." {
		t.Fatalf("classes = %q", got)
	}
}

func TestScanRow(t *testing.T) {
	p := cProfile(t)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keywords", "int x = 12;", "ttt.....nn."},
		{"keyword needs separator", "integer if", "........kk"},
		{"number after letter", "x1 1.5", "...nnn"},
		{"string", `a "b\"c" d`, `..ssssss..`},
		{"char", `'x'`, `sss`},
		{"line comment", "x // int", "..cccccc"},
		{"comment inside string", `"//" x`, `ssss..`},
		{"block comment", "a /* b */ c", "..mmmmmmm.."},
		{"return keyword", "return 0;", "kkkkkk.n."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classes, open := Scan(p, []byte(tt.in), false, nil)
			if open {
				t.Fatalf("open = true, want false")
			}
			if got := classesString(classes); got != tt.want {
				t.Fatalf("Scan(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestScanBlockCommentCarry(t *testing.T) {
	p := cProfile(t)
	classes, open := Scan(p, []byte("x /* open"), false, nil)
	if !open {
		t.Fatalf("open = false, want true")
	}
	if got := classesString(classes); got != "..mmmmmmm" {
		t.Fatalf("classes = %q", got)
	}

	classes, open = Scan(p, []byte("still"), true, nil)
	if !open {
		t.Fatalf("open = false, want true")
	}
	if got := classesString(classes); got != "mmmmm" {
		t.Fatalf("classes = %q", got)
	}

	classes, open = Scan(p, []byte("end */ int"), true, nil)
	if open {
		t.Fatalf("open = true, want false")
	}
	if got := classesString(classes); got != "mmmmmm.ttt" {
		t.Fatalf("classes = %q", got)
	}
}

func TestScanReusesBuffer(t *testing.T) {
	p := cProfile(t)
	buf := make([]Class, 0, 32)
	classes, _ := Scan(p, []byte("if"), false, buf)
	if &classes[0] != &buf[:1][0] {
		t.Fatalf("Scan did not reuse dst")
	}
}

func TestIsSeparator(t *testing.T) {
	for _, c := range []byte(" \t,.()+-/*=~%<>[];\x00") {
		if !IsSeparator(c) {
			t.Fatalf("IsSeparator(%q) = false", c)
		}
	}
	for _, c := range []byte("aZ0_\"{") {
		if IsSeparator(c) {
			t.Fatalf("IsSeparator(%q) = true", c)
		}
	}
}
