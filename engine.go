package gochunk

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// engine drives the packer across the whole input, applying the
// Chunk Engine's trim and overlap semantics from SPEC_FULL.md §4.6.
type engine struct {
	text    []byte
	packer  *packer
	ladder  BoundaryLadder
	sizer   Sizer
	overlap int
	trim    bool
}

func newEngine(text []byte, ladder BoundaryLadder, sizer Sizer, capacity Capacity, overlap int, trim bool) *engine {
	return &engine{
		text: text,
		packer: &packer{
			text:     text,
			ladder:   ladder,
			sizer:    sizer,
			capacity: capacity,
		},
		ladder:  ladder,
		sizer:   sizer,
		overlap: overlap,
		trim:    trim,
	}
}

// run produces the ordered ChunkIndex stream for the whole input.
// Termination is guaranteed because packer.next always consumes at least
// one byte (the overflow rule) and overlap is clamped to never regress the
// cursor.
func (e *engine) run() []ChunkIndex {
	var out []ChunkIndex
	total := len(e.text)
	start := 0

	for start < total {
		sp := e.packer.next(start, total)
		end := sp.end
		if end <= start {
			end = start + 1
		}

		chunkStart, chunkEnd := start, end
		if e.trim {
			chunkStart, chunkEnd = trimSpan(e.text, start, end)
		}
		if chunkEnd > chunkStart {
			out = append(out, ChunkIndex{Offset: chunkStart, Text: string(e.text[chunkStart:chunkEnd])})
		}

		next := end
		if e.overlap > 0 && end < total {
			if c := e.overlapStart(start, end); c > start && c < end {
				next = c
			}
		}
		start = next
	}

	return out
}

// trimSpan strips Unicode whitespace from both ends of text[start:end],
// walking whole runes so a multi-byte scalar is never split.
func trimSpan(text []byte, start, end int) (int, int) {
	for start < end {
		r, size := utf8.DecodeRune(text[start:end])
		if size <= 0 || !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRune(text[start:end])
		if size <= 0 || !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	return start, end
}

// overlapStart picks the next chunk's left edge: the smallest offset c in
// [prevStart, b) — maximizing the overlapping suffix — such that
// size(text[c:b]) <= overlap, aligned to the coarsest boundary level that
// can satisfy it, falling back to finer levels as needed (SPEC_FULL.md §9
// open-question resolution). Returns b if no level yields any overlap
// within budget.
func (e *engine) overlapStart(prevStart, b int) int {
	level := e.ladder.BaseLevel()
	for {
		if c, ok := e.bestOverlapAt(level, prevStart, b); ok {
			return c
		}
		next, hasNext := e.ladder.NextLevel(level)
		if !hasNext {
			return b
		}
		level = next
	}
}

func (e *engine) bestOverlapAt(level Level, prevStart, b int) (int, bool) {
	bounds := e.ladder.Boundaries(e.text, prevStart, b, level)
	candidates := make([]int, 0, len(bounds)+1)
	candidates = append(candidates, prevStart)
	candidates = append(candidates, bounds...)
	sort.Ints(candidates)

	for _, c := range candidates {
		if e.sizer.Size(e.text[c:b]) <= e.overlap {
			return c, true
		}
	}
	return 0, false
}
