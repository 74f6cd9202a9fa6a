package gochunk

import "errors"

// Construction-time and load-time error values. Once a Splitter is built,
// splitting is infallible (assuming the configured Sizer is total) — see
// package doc comment and SPEC_FULL.md §7.
var (
	// ErrInvalidCapacity is returned when a Capacity is constructed with lo > hi.
	ErrInvalidCapacity = errors.New("gochunk: invalid capacity: lo must be <= hi")

	// ErrInvalidOverlap is returned when an overlap is negative, or when the
	// capacity's lo is greater than zero and overlap >= lo.
	ErrInvalidOverlap = errors.New("gochunk: invalid overlap: must be < capacity lo")

	// ErrUnknownModel is returned when a model-named tokenizer Sizer can't resolve
	// the requested model.
	ErrUnknownModel = errors.New("gochunk: unknown tokenizer model")

	// ErrInvalidLanguage is returned when a Code ladder is constructed with a
	// language handle it doesn't recognize.
	ErrInvalidLanguage = errors.New("gochunk: invalid code language")

	// ErrTokenizerLoad is returned when tokenizer configuration (vocab, merges,
	// or a serialized config) fails to parse.
	ErrTokenizerLoad = errors.New("gochunk: failed to load tokenizer configuration")
)
