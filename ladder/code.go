package ladder

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	clang "github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/MegaGrindStone/gochunk"
)

// languagesByName maps the Code ladder's language names onto tree-sitter
// grammars, the same language set the pack's tree-sitter-based chunker
// supports.
var languagesByName = map[string]func() *sitter.Language{
	"go":         golang.GetLanguage,
	"python":     python.GetLanguage,
	"javascript": javascript.GetLanguage,
	"typescript": typescript.GetLanguage,
	"rust":       rust.GetLanguage,
	"java":       java.GetLanguage,
	"ruby":       ruby.GetLanguage,
	"c":          clang.GetLanguage,
	"cpp":        cpp.GetLanguage,
	"csharp":     csharp.GetLanguage,
	"bash":       bash.GetLanguage,
}

// Code is a gochunk.BoundaryLadder over a tree-sitter syntax tree. Each
// level is a depth in the tree: level 0 splits at the root's immediate
// children (top-level declarations), level 1 at their children, and so
// on; past the deepest level in the tree, it falls back to
// gochunk.TextLadder. Depth is computed with a parent-tracking walk since
// the tree-sitter Go binding doesn't report a node's depth directly.
type Code struct {
	lang   string
	tsLang *sitter.Language

	mu         sync.Mutex
	cachedText []byte
	cachedIdx  *codeIndex
}

// newCodeLadder constructs a Code BoundaryLadder for the named language.
// An unrecognized name returns gochunk.ErrInvalidLanguage.
func newCodeLadder(language string) (*Code, error) {
	get, ok := languagesByName[language]
	if !ok {
		return nil, fmt.Errorf("ladder.NewCode(%q): %w", language, gochunk.ErrInvalidLanguage)
	}
	return &Code{lang: language, tsLang: get()}, nil
}

// NewCode builds a Splitter that chunks source code along tree-sitter AST
// node boundaries, finer levels following the parse tree's depth, before
// falling back to the plain-text ladder, per SPEC_FULL.md §4.7. language
// must be one of the names in languagesByName; an unrecognized name
// returns gochunk.ErrInvalidLanguage.
func NewCode(capacity gochunk.Capacity, sizer gochunk.Sizer, language string, opts ...gochunk.Option) (*gochunk.Splitter, error) {
	l, err := newCodeLadder(language)
	if err != nil {
		return nil, err
	}
	return gochunk.New(l, sizer, capacity, opts...)
}

type codeIndex struct {
	byLevel  map[gochunk.Level][]int
	maxDepth int // deepest node depth found; levels run 0..maxDepth-1
}

// BaseLevel implements gochunk.BoundaryLadder.
func (c *Code) BaseLevel() gochunk.Level { return 0 }

// NextLevel implements gochunk.BoundaryLadder. It relies on the depth
// index already having been built by a prior Boundaries call on the same
// text, which the Packer always does before consulting NextLevel.
func (c *Code) NextLevel(level gochunk.Level) (gochunk.Level, bool) {
	c.mu.Lock()
	idx := c.cachedIdx
	c.mu.Unlock()

	codeLevels := gochunk.Level(1) // a parse failure leaves exactly one level
	if idx != nil {
		codeLevels = gochunk.Level(idx.maxDepth)
	}
	if level+1 < codeLevels {
		return level + 1, true
	}
	return textLadder(codeLevels).NextLevel(level)
}

// Boundaries implements gochunk.BoundaryLadder.
func (c *Code) Boundaries(text []byte, start, end int, level gochunk.Level) []int {
	idx := c.index(text)

	codeLevels := gochunk.Level(idx.maxDepth)
	if level >= codeLevels {
		return textLadder(codeLevels).Boundaries(text, start, end, level)
	}

	bounds := idx.byLevel[level]
	out := make([]int, 0, len(bounds))
	for _, b := range bounds {
		if b > start && b < end {
			out = append(out, b)
		}
	}
	return out
}

func (c *Code) index(text []byte) *codeIndex {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cachedIdx != nil && sameBytes(c.cachedText, text) {
		return c.cachedIdx
	}

	idx := c.buildIndex(text)
	c.cachedText = text
	c.cachedIdx = idx
	return idx
}

// buildIndex parses text and walks the resulting tree once, recording the
// start and end byte of every node at each depth. A parse failure (malformed
// source tree-sitter can't recover from) degrades to a single level with
// no boundaries, per SPEC_FULL.md's supplemented fallback-to-text-ladder
// behavior, grounded in the pack's tree-sitter chunker falling back to
// line-based chunking when parsing doesn't yield usable structure.
func (c *Code) buildIndex(text []byte) *codeIndex {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(c.tsLang)

	tree, err := parser.ParseCtx(context.Background(), nil, text)
	if err != nil || tree == nil {
		return &codeIndex{byLevel: map[gochunk.Level][]int{}, maxDepth: 1}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return &codeIndex{byLevel: map[gochunk.Level][]int{}, maxDepth: 1}
	}

	byLevel := make(map[gochunk.Level][]int)
	maxDepth := 1
	var walk func(node *sitter.Node, depth int)
	walk = func(node *sitter.Node, depth int) {
		if depth > maxDepth {
			maxDepth = depth
		}
		if depth >= 1 {
			level := gochunk.Level(depth - 1)
			byLevel[level] = append(byLevel[level], int(node.StartByte()), int(node.EndByte()))
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(i), depth+1)
		}
	}
	walk(root, 0)

	for level, offs := range byLevel {
		byLevel[level] = sortUnique(offs)
	}

	return &codeIndex{byLevel: byLevel, maxDepth: maxDepth}
}
