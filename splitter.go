package gochunk

import "fmt"

// Splitter is the generic recursive semantic splitter: one engine
// parameterized by a Sizer and a BoundaryLadder, per SPEC_FULL.md §9 (one
// generic engine parameterized by (Sizer, Ladder)). Text,
// Markdown, and Code splitters are the same Splitter built with different
// ladders (TextLadder in this package; ladder.Markdown and ladder.Code in
// gochunk/ladder).
type Splitter struct {
	ladder   BoundaryLadder
	sizer    Sizer
	capacity Capacity
	overlap  int
	trim     bool
}

// Option configures a Splitter at construction time.
type Option func(*splitterConfig)

type splitterConfig struct {
	overlap int
	trim    bool
}

// WithOverlap sets the number of size-units of overlap between consecutive
// chunks. Must be non-negative and, when the capacity's Lo is greater than
// zero, less than Lo (see ErrInvalidOverlap); a capacity with Lo == 0
// accepts any non-negative overlap. Default 0.
func WithOverlap(overlap int) Option {
	return func(c *splitterConfig) { c.overlap = overlap }
}

// WithTrim sets whether emitted chunks have leading/trailing Unicode
// whitespace stripped. Default true.
func WithTrim(trim bool) Option {
	return func(c *splitterConfig) { c.trim = trim }
}

func resolveOptions(opts ...Option) splitterConfig {
	cfg := splitterConfig{overlap: 0, trim: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// New builds a Splitter from an explicit BoundaryLadder, Sizer, and
// Capacity. This is the generic constructor every flavor-specific
// constructor (NewText here, ladder.NewMarkdown, ladder.NewCode in the
// ladder subpackage) delegates to.
func New(ladder BoundaryLadder, sizer Sizer, capacity Capacity, opts ...Option) (*Splitter, error) {
	cfg := resolveOptions(opts...)
	if cfg.overlap < 0 || (capacity.Lo > 0 && cfg.overlap >= capacity.Lo) {
		return nil, fmt.Errorf("New: overlap=%d, capacity.Lo=%d: %w", cfg.overlap, capacity.Lo, ErrInvalidOverlap)
	}
	return &Splitter{
		ladder:   ladder,
		sizer:    sizer,
		capacity: capacity,
		overlap:  cfg.overlap,
		trim:     cfg.trim,
	}, nil
}

// NewText builds a plain-text Splitter using TextLadder.
func NewText(sizer Sizer, capacity Capacity, opts ...Option) (*Splitter, error) {
	return New(TextLadder{}, sizer, capacity, opts...)
}

// Chunks splits text and returns the ordered chunk texts.
func (s *Splitter) Chunks(text string) []string {
	indices := s.ChunkIndices(text)
	if len(indices) == 0 {
		return nil
	}
	out := make([]string, len(indices))
	for i, c := range indices {
		out[i] = c.Text
	}
	return out
}

// ChunkIndices splits text and returns the ordered (byte_offset, text) pairs.
func (s *Splitter) ChunkIndices(text string) []ChunkIndex {
	if text == "" {
		return nil
	}
	e := newEngine([]byte(text), s.ladder, s.sizer, s.capacity, s.overlap, s.trim)
	return e.run()
}
