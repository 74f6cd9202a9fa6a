package gochunk

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Plain-text boundary ladder, per SPEC_FULL.md §4.3:
//
//	grade 0..paragraphGrades-1  paragraph breaks, graded by run length (coarser first)
//	levelLineBreak              single line break
//	levelSentence               UAX #29 sentence boundary
//	levelWord                   UAX #29 word boundary
//	levelGrapheme               UAX #29 grapheme-cluster boundary
//	levelRune                   individual Unicode scalar value
//
// Sentence, word, and grapheme boundaries are computed with
// github.com/rivo/uniseg, the ecosystem's UAX #29 segmenter (pulled in by
// several chunking projects in the retrieval pack for the same purpose).
const (
	paragraphGrades = 5 // grades for run lengths >=6, 5, 4, 3, 2 (coarsest first)
)

// TextLadder is the plain-text BoundaryLadder. It is also the finer
// fallback every other ladder in this module delegates to once its own
// domain-specific levels are exhausted, via the LevelOffset field: an
// embedding ladder sets LevelOffset to the number of levels it defines
// itself, so TextLadder's levels continue immediately afterward without
// colliding.
type TextLadder struct {
	// LevelOffset shifts every level this ladder reports by a fixed amount.
	// Zero for standalone use.
	LevelOffset Level
}

// Level constants relative to LevelOffset == 0.
const (
	levelLineBreak Level = paragraphGrades + iota
	levelSentence
	levelWord
	levelGrapheme
	levelRune
)

// BaseLevel implements BoundaryLadder.
func (t TextLadder) BaseLevel() Level {
	return t.LevelOffset
}

// NextLevel implements BoundaryLadder.
func (t TextLadder) NextLevel(level Level) (Level, bool) {
	local := level - t.LevelOffset
	if local >= levelRune {
		return 0, false
	}
	return level + 1, true
}

// Boundaries implements BoundaryLadder.
func (t TextLadder) Boundaries(text []byte, start, end int, level Level) []int {
	local := level - t.LevelOffset
	switch {
	case local >= 0 && local < paragraphGrades:
		return paragraphBoundaries(text, start, end, local)
	case local == levelLineBreak:
		return lineBreakBoundaries(text, start, end)
	case local == levelSentence:
		return sentenceBoundaries(text, start, end)
	case local == levelWord:
		return wordBoundaries(text, start, end)
	case local == levelGrapheme:
		return graphemeBoundaries(text, start, end)
	case local == levelRune:
		return runeBoundaries(text, start, end)
	default:
		return nil
	}
}

// paragraphGrade maps a consecutive-line-break run length to a grade, 0
// being coarsest (the longest runs). Runs longer than the coarsest grade's
// threshold collapse into grade 0 — unbounded grading isn't required by the
// spec, only that longer runs split before shorter ones.
func paragraphGrade(runLen int) int {
	grade := (paragraphGrades + 1) - runLen
	if grade < 0 {
		grade = 0
	}
	if grade > paragraphGrades-1 {
		grade = paragraphGrades - 1
	}
	return grade
}

// paragraphBoundaries finds runs of two or more consecutive '\n' bytes whose
// grade matches the requested grade, and returns the offset right after
// each qualifying run. A "\r\n" pair counts as one line-break unit within a
// run, matching common Markdown/text conventions; bare '\r' is not treated
// as a line break (a documented limitation, same as the pack's az-ai-labs
// chunker, which handles "\n\n" only).
func paragraphBoundaries(text []byte, start, end int, grade int) []int {
	var bounds []int
	i := start
	for i < end {
		if text[i] != '\n' {
			i++
			continue
		}
		runStart := i
		runLen := 0
		for i < end {
			if text[i] == '\n' {
				runLen++
				i++
			} else if text[i] == '\r' && i+1 < end && text[i+1] == '\n' {
				runLen++
				i += 2
			} else {
				break
			}
		}
		if runLen < 2 {
			i = runStart + 1
			continue
		}
		if paragraphGrade(runLen) == grade {
			bounds = append(bounds, i)
		}
	}
	return bounds
}

// lineBreakBoundaries returns the offset after every single '\n' (or "\r\n")
// occurrence.
func lineBreakBoundaries(text []byte, start, end int) []int {
	var bounds []int
	for i := start; i < end; i++ {
		if text[i] == '\n' {
			bounds = append(bounds, i+1)
		}
	}
	return bounds
}

func sentenceBoundaries(text []byte, start, end int) []int {
	return uax29Boundaries(text, start, end, func(s string, state int) (seg string, rest string, newState int) {
		seg, rest, newState = uniseg.FirstSentenceInString(s, state)
		return
	})
}

func wordBoundaries(text []byte, start, end int) []int {
	return uax29Boundaries(text, start, end, func(s string, state int) (seg string, rest string, newState int) {
		seg, rest, newState = uniseg.FirstWordInString(s, state)
		return
	})
}

func graphemeBoundaries(text []byte, start, end int) []int {
	return uax29Boundaries(text, start, end, func(s string, state int) (seg string, rest string, newState int) {
		var width int
		seg, rest, width, newState = uniseg.FirstGraphemeClusterInString(s, state)
		_ = width
		return
	})
}

// uax29Boundaries drives one of rivo/uniseg's First*InString segmenters over
// text[start:end] and returns the offset after every segment except the
// last (the window's own end is implied, not reported as an interior
// boundary).
func uax29Boundaries(text []byte, start, end int, next func(s string, state int) (seg, rest string, newState int)) []int {
	s := string(text[start:end])
	if s == "" {
		return nil
	}
	var bounds []int
	state := -1
	offset := start
	for len(s) > 0 {
		seg, rest, newState := next(s, state)
		offset += len(seg)
		state = newState
		s = rest
		if len(rest) > 0 {
			bounds = append(bounds, offset)
		}
	}
	return bounds
}

// runeBoundaries returns the offset after every Unicode scalar value.
func runeBoundaries(text []byte, start, end int) []int {
	var bounds []int
	i := start
	for i < end {
		_, size := utf8.DecodeRune(text[i:end])
		if size <= 0 {
			size = 1
		}
		i += size
		if i < end {
			bounds = append(bounds, i)
		}
	}
	return bounds
}
