// Package sizer provides built-in gochunk.Sizer adapters: plain Unicode
// character counting, a user-callback wrapper with content-hash
// memoization, a tiktoken-style model-named tokenizer, and a pure-Go BPE
// tokenizer loaded from local vocab/merges files.
package sizer

import (
	"unicode/utf8"

	"github.com/MegaGrindStone/gochunk"
)

// Character counts Unicode scalar values. It is the simplest possible
// Sizer and the one NewDefault pre-wires for callers who don't need
// token-aware sizing.
type Character struct{}

// Size implements gochunk.Sizer.
func (Character) Size(text []byte) int {
	return utf8.RuneCount(text)
}

// NewDefault builds a plain-text Splitter with Character{} pre-wired as
// its Sizer, a zero-value-usable default so the common "characters,
// range, no overlap" case needs no Sizer boilerplate. It lives here
// rather than in the root package because
// gochunk must not import gochunk/sizer (sizer depends on gochunk, never
// the reverse); NewMarkdown and NewCode in gochunk/ladder follow the same
// shape for the same reason.
func NewDefault(capacity gochunk.Capacity, opts ...gochunk.Option) (*gochunk.Splitter, error) {
	return gochunk.NewText(Character{}, capacity, opts...)
}
