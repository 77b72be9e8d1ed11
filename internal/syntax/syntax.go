package syntax

import (
	"path/filepath"
	"strings"
)

// Class is the highlight tag assigned to one rendered byte.
type Class uint8

const (
	Normal Class = iota
	Comment
	MLComment
	Keyword1
	Keyword2
	String
	Number
	Match
)

func (c Class) String() string {
	switch c {
	case Comment:
		return "comment"
	case MLComment:
		return "mlcomment"
	case Keyword1:
		return "keyword1"
	case Keyword2:
		return "keyword2"
	case String:
		return "string"
	case Number:
		return "number"
	case Match:
		return "match"
	default:
		return "normal"
	}
}

// IsComment reports whether c is either comment class.
func (c Class) IsComment() bool {
	return c == Comment || c == MLComment
}

type Flags uint8

const (
	HighlightNumbers Flags = 1 << iota
	HighlightStrings
)

// Profile describes how rows of one file type are classified.
// Keywords ending in "|" are secondary (Keyword2).
type Profile struct {
	Name        string
	FileMatch   []string
	Keywords    []string
	LineComment string
	BlockStart  string
	BlockEnd    string
	Flags       Flags
}

// Matches reports whether filename belongs to the profile. Entries starting
// with a dot are compared against the extension, anything else is a
// substring of the file name.
func (p *Profile) Matches(filename string) bool {
	if filename == "" {
		return false
	}
	ext := filepath.Ext(filename)
	for _, fm := range p.FileMatch {
		if fm == "" {
			continue
		}
		if strings.HasPrefix(fm, ".") {
			if ext != "" && ext == fm {
				return true
			}
			continue
		}
		if strings.Contains(filename, fm) {
			return true
		}
	}
	return false
}

var cKeywords = []string{
	"switch", "if", "while", "for", "break", "continue", "return", "else",
	"struct", "union", "typedef", "static", "enum", "class", "case",
	"int|", "long|", "double|", "float|", "char|", "unsigned|", "signed|",
	"void|",
}

var goKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type", "var",
	"bool|", "byte|", "rune|", "string|", "int|", "int8|", "int16|", "int32|", "int64|",
	"uint|", "uint8|", "uint16|", "uint32|", "uint64|", "uintptr|", "float32|", "float64|",
	"error|", "any|", "nil|", "true|", "false|",
}

// Builtin returns the profiles compiled into the editor.
func Builtin() []Profile {
	return []Profile{
		{
			Name:        "c",
			FileMatch:   []string{".c", ".h", ".cpp"},
			Keywords:    cKeywords,
			LineComment: "//",
			BlockStart:  "/*",
			BlockEnd:    "*/",
			Flags:       HighlightNumbers | HighlightStrings,
		},
		{
			Name:        "go",
			FileMatch:   []string{".go"},
			Keywords:    goKeywords,
			LineComment: "//",
			BlockStart:  "/*",
			BlockEnd:    "*/",
			Flags:       HighlightNumbers | HighlightStrings,
		},
	}
}

// Registry holds the profiles available to a session. Profiles added by the
// user take precedence over the built-in ones.
type Registry struct {
	profiles []Profile
}

func NewRegistry(extra ...Profile) *Registry {
	r := &Registry{}
	r.profiles = append(r.profiles, extra...)
	r.profiles = append(r.profiles, Builtin()...)
	return r
}

// Select returns the first profile matching filename, or nil.
func (r *Registry) Select(filename string) *Profile {
	if r == nil {
		return nil
	}
	for i := range r.profiles {
		if r.profiles[i].Matches(filename) {
			return &r.profiles[i]
		}
	}
	return nil
}
