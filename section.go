package gochunk

import "sort"

// Level is a rank in a BoundaryLadder; 0 is coarsest. A ladder may define
// as many levels as it needs — the Packer never assumes a fixed count, only
// that NextLevel eventually runs out.
type Level int

// Section is a contiguous byte range of the input tagged with the ladder
// level whose boundary delimits it.
type Section struct {
	Start int
	End   int
	Level Level
}

// BoundaryLadder is an ordered sequence of level detectors, coarsest (level
// returned by BaseLevel) to finest. Each detector, given a text window,
// yields the byte offsets at which a split of that level may occur.
type BoundaryLadder interface {
	// Boundaries returns, in ascending order, the interior byte offsets
	// within (start, end) at which a split of the given level may occur.
	// An empty result means this level does not split the window at all —
	// callers should fall back to NextLevel.
	Boundaries(text []byte, start, end int, level Level) []int

	// NextLevel returns the next finer level after level, and false if
	// level is already the finest level this ladder defines.
	NextLevel(level Level) (Level, bool)

	// BaseLevel returns this ladder's coarsest level.
	BaseLevel() Level
}

// sections tiles [start, end) into non-overlapping, contiguous Sections at
// the given level, using the ladder's boundary offsets. This is the Section
// Iterator described in the design: it consumes a BoundaryLadder's detector
// output and produces the tiled Section stream the Packer walks.
func sections(ladder BoundaryLadder, text []byte, start, end int, level Level) []Section {
	if start >= end {
		return nil
	}
	bounds := ladder.Boundaries(text, start, end, level)
	if len(bounds) == 0 {
		return []Section{{Start: start, End: end, Level: level}}
	}

	// Defensive: ensure strictly ascending, in-range, deduplicated offsets.
	bounds = sanitizeBoundaries(bounds, start, end)
	if len(bounds) == 0 {
		return []Section{{Start: start, End: end, Level: level}}
	}

	result := make([]Section, 0, len(bounds)+1)
	prev := start
	for _, b := range bounds {
		result = append(result, Section{Start: prev, End: b, Level: level})
		prev = b
	}
	if prev < end {
		result = append(result, Section{Start: prev, End: end, Level: level})
	}
	return result
}

func sanitizeBoundaries(bounds []int, start, end int) []int {
	filtered := bounds[:0:0]
	for _, b := range bounds {
		if b > start && b < end {
			filtered = append(filtered, b)
		}
	}
	if !sort.IntsAreSorted(filtered) {
		sort.Ints(filtered)
	}
	out := filtered[:0:0]
	var last = -1
	for _, b := range filtered {
		if b != last {
			out = append(out, b)
			last = b
		}
	}
	return out
}
