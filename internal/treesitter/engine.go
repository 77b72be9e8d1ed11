package treesitter

import (
	"context"
	"path/filepath"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/kobzarvs/kilovi/internal/config"
	"github.com/kobzarvs/kilovi/internal/logger"
)

// MaxParseBytes bounds the documents handed to the parser.
const MaxParseBytes = 8 << 20

// Engine keeps one syntax tree per open file. Trees are only used to find
// the nodes around a position, highlighting is done row by row elsewhere.
type Engine struct {
	langs   config.Languages
	parsers map[string]*sitter.Parser
	trees   map[string]*sitter.Tree
	mu      sync.RWMutex
}

func New(langs config.Languages) *Engine {
	return &Engine{
		langs:   langs,
		parsers: make(map[string]*sitter.Parser),
		trees:   make(map[string]*sitter.Tree),
	}
}

// Grammar names the grammar used for path: the grammar of a matching
// languages.toml entry, else one picked by extension. Empty means none.
func (e *Engine) Grammar(path string) string {
	if lang := e.langs.Match(path); lang != nil && lang.Grammar != "" {
		return lang.Grammar
	}
	switch filepath.Ext(path) {
	case ".go":
		return "go"
	case ".c", ".h", ".cpp":
		return "c"
	}
	return ""
}

func languageForName(name string) *sitter.Language {
	switch name {
	case "go":
		return golang.GetLanguage()
	case "c":
		return c.GetLanguage()
	default:
		return nil
	}
}

// ParseSync parses text as the contents of path and replaces its tree.
// It reports false when no grammar applies or the text is too large.
func (e *Engine) ParseSync(path, grammar, text string) bool {
	if grammar == "" {
		grammar = e.Grammar(path)
	}
	tsLang := languageForName(grammar)
	if tsLang == nil || len(text) > MaxParseBytes {
		e.Forget(path)
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	parser := e.parsers[grammar]
	if parser == nil {
		parser = sitter.NewParser()
		parser.SetLanguage(tsLang)
		e.parsers[grammar] = parser
	}
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(text))
	if err != nil {
		logger.Warn("tree-sitter parse failed", "path", path, "err", err)
		return false
	}
	if old := e.trees[path]; old != nil {
		old.Close()
	}
	e.trees[path] = tree
	return true
}

// Forget drops the tree of path.
func (e *Engine) Forget(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t := e.trees[path]; t != nil {
		t.Close()
		delete(e.trees, path)
	}
}

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for path, t := range e.trees {
		t.Close()
		delete(e.trees, path)
	}
	for name, p := range e.parsers {
		p.Close()
		delete(e.parsers, name)
	}
}

// NodeRange represents a syntax node's position range
type NodeRange struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// GetNodeStackAt returns a stack of node ranges at the given position,
// from innermost to outermost (root). Used for expand/shrink selection.
func (e *Engine) GetNodeStackAt(path string, row, col int) []NodeRange {
	e.mu.RLock()
	defer e.mu.RUnlock()
	tree := e.trees[path]
	if tree == nil {
		return nil
	}

	root := tree.RootNode()
	if root == nil {
		return nil
	}

	point := sitter.Point{Row: uint32(row), Column: uint32(col)}
	node := root.NamedDescendantForPointRange(point, point)
	if node == nil {
		return nil
	}

	var stack []NodeRange
	for node != nil {
		start := node.StartPoint()
		end := node.EndPoint()
		nr := NodeRange{
			StartRow: int(start.Row),
			StartCol: int(start.Column),
			EndRow:   int(end.Row),
			EndCol:   int(end.Column),
		}
		// nested nodes often share a range
		if len(stack) == 0 || stack[len(stack)-1] != nr {
			stack = append(stack, nr)
		}
		node = node.Parent()
	}
	return stack
}
