// Package gochunk partitions UTF-8 text into the largest contiguous
// chunks whose measured size lies within a requested capacity range,
// while respecting semantic boundaries of the text.
//
// The core algorithm is a recursive semantic splitter: given a pluggable
// Sizer and an ordered BoundaryLadder of detectors from coarsest to
// finest, it produces a maximal, non-overlapping, ordered partition of
// the input such that every chunk's size lies in the requested range
// whenever the input permits.
//
// Three ladders ship in this module and its ladder subpackage: a plain
// text ladder (TextLadder, in this package, since every other ladder
// falls back to it), a CommonMark Markdown ladder, and a tree-sitter
// backed source code ladder (both in gochunk/ladder). Sizers ship in
// gochunk/sizer: character counting, a tiktoken-style model lookup, and
// a pure-Go BPE tokenizer loaded from local vocab/merges files.
//
// Splitting itself is a pure, single-threaded, synchronous function of
// (input, sizer, capacity, options); once a Splitter is constructed,
// splitting cannot fail (assuming the configured Sizer is total).
package gochunk
