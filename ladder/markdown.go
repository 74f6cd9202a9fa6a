// Package ladder provides concrete gochunk.BoundaryLadder implementations
// beyond the plain-text ladder built into the root package: Markdown
// (github.com/yuin/goldmark) and Code (github.com/smacker/go-tree-sitter).
package ladder

import (
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gast "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/MegaGrindStone/gochunk"
)

// Markdown levels, coarsest to finest, per SPEC_FULL.md §4.4: heading
// breaks graded by depth, then block boundaries (thematic break / fenced
// code / HTML block / table), then list-item and blockquote boundaries,
// then paragraph boundaries, then soft/hard line breaks. Anything finer
// delegates to gochunk.TextLadder.
const (
	LevelH1 gochunk.Level = iota
	LevelH2
	LevelH3
	LevelH4
	LevelH5
	LevelH6
	LevelBlock
	LevelListQuote
	LevelParagraph
	LevelLineBreak

	markdownLevelCount
)

// Markdown is a gochunk.BoundaryLadder over CommonMark structure. It
// parses with goldmark (extended with tables) and walks the resulting
// ast.Node tree once per distinct input, caching the boundary index
// since Boundaries is called repeatedly by the Packer across many
// (start, end, level) windows over the same underlying byte slice.
type Markdown struct {
	parser goldmark.Markdown

	mu         sync.Mutex
	cachedText []byte
	cachedIdx  *markdownIndex
}

// newMarkdownLadder constructs a Markdown BoundaryLadder.
func newMarkdownLadder() *Markdown {
	return &Markdown{
		parser: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// NewMarkdown builds a Splitter that chunks CommonMark text along
// heading/block/list/paragraph/line-break boundaries before falling back
// to the plain-text ladder, per SPEC_FULL.md §4.4.
func NewMarkdown(sizer gochunk.Sizer, capacity gochunk.Capacity, opts ...gochunk.Option) (*gochunk.Splitter, error) {
	return gochunk.New(newMarkdownLadder(), sizer, capacity, opts...)
}

// BaseLevel implements gochunk.BoundaryLadder.
func (m *Markdown) BaseLevel() gochunk.Level { return LevelH1 }

// NextLevel implements gochunk.BoundaryLadder.
func (m *Markdown) NextLevel(level gochunk.Level) (gochunk.Level, bool) {
	if level < LevelLineBreak {
		return level + 1, true
	}
	return textLadder(markdownLevelCount).NextLevel(level)
}

// Boundaries implements gochunk.BoundaryLadder.
func (m *Markdown) Boundaries(text []byte, start, end int, level gochunk.Level) []int {
	if level >= markdownLevelCount {
		return textLadder(markdownLevelCount).Boundaries(text, start, end, level)
	}

	idx := m.index(text)
	bounds := idx.byLevel[level]

	out := make([]int, 0, len(bounds))
	for _, b := range bounds {
		if b > start && b < end {
			out = append(out, b)
		}
	}
	return out
}

// textLadder builds the plain-text continuation ladder offset past this
// ladder's own levels.
func textLadder(offset gochunk.Level) gochunk.TextLadder {
	return gochunk.TextLadder{LevelOffset: offset}
}

// markdownIndex is the precomputed set of boundary offsets per level for
// one parsed document.
type markdownIndex struct {
	byLevel map[gochunk.Level][]int
}

func (m *Markdown) index(text []byte) *markdownIndex {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cachedIdx != nil && sameBytes(m.cachedText, text) {
		return m.cachedIdx
	}

	idx := buildMarkdownIndex(m.parser, text)
	m.cachedText = text
	m.cachedIdx = idx
	return idx
}

func sameBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

func buildMarkdownIndex(md goldmark.Markdown, source []byte) *markdownIndex {
	byLevel := make(map[gochunk.Level][]int, markdownLevelCount)
	add := func(level gochunk.Level, offsets ...int) {
		for _, o := range offsets {
			if o > 0 && o < len(source) {
				byLevel[level] = append(byLevel[level], o)
			}
		}
	}

	reader := gtext.NewReader(source)
	doc := md.Parser().Parse(reader)

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			start, _, ok := blockSpan(n, source)
			if ok && n.Level >= 1 && n.Level <= 6 {
				add(LevelH1+gochunk.Level(n.Level-1), start)
			}
		case *ast.ThematicBreak:
			if start, end, ok := blockSpan(n, source); ok {
				add(LevelBlock, start, end)
			}
		case *ast.CodeBlock:
			if start, end, ok := blockSpan(n, source); ok {
				add(LevelBlock, start, end)
			}
		case *ast.FencedCodeBlock:
			if start, end, ok := blockSpan(n, source); ok {
				add(LevelBlock, start, end)
			}
		case *ast.HTMLBlock:
			if start, end, ok := blockSpan(n, source); ok {
				add(LevelBlock, start, end)
			}
		case *gast.Table:
			if start, end, ok := blockSpan(n, source); ok {
				add(LevelBlock, start, end)
			}
		case *ast.ListItem:
			if start, _, ok := blockSpan(n, source); ok {
				add(LevelListQuote, start)
			}
		case *ast.Blockquote:
			if start, end, ok := blockSpan(n, source); ok {
				add(LevelListQuote, start, end)
			}
		case *ast.Paragraph:
			if start, _, ok := blockSpan(n, source); ok {
				add(LevelParagraph, start)
			}
		}

		return ast.WalkContinue, nil
	})

	byLevel[LevelLineBreak] = softLineBreaks(source)

	for level, offs := range byLevel {
		byLevel[level] = sortUnique(offs)
	}

	return &markdownIndex{byLevel: byLevel}
}

// softLineBreaks returns the offset after every single '\n' in source —
// the soft/hard line break level within a paragraph, finer than paragraph
// boundaries but coarser than sentence/word splitting.
func softLineBreaks(source []byte) []int {
	var bounds []int
	for i, b := range source {
		if b == '\n' && i+1 < len(source) {
			bounds = append(bounds, i+1)
		}
	}
	return bounds
}

// blockSpan reports the byte span of a block node via its Lines segments.
func blockSpan(node ast.Node, source []byte) (start, end int, ok bool) {
	lineser, hasLines := node.(interface{ Lines() *gtext.Segments })
	if !hasLines {
		return 0, 0, false
	}
	lines := lineser.Lines()
	if lines.Len() == 0 {
		return 0, 0, false
	}
	seg := lines.At(0)
	start, end = seg.Start, seg.Stop
	for i := 1; i < lines.Len(); i++ {
		s := lines.At(i)
		if s.Stop > end {
			end = s.Stop
		}
	}
	return start, end, true
}

func sortUnique(offs []int) []int {
	seen := make(map[int]bool, len(offs))
	out := offs[:0:0]
	for _, o := range offs {
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
