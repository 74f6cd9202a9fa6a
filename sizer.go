package gochunk

// Sizer maps a byte slice to its measured size. It must be a pure, total
// function: the same bytes always yield the same size, and it never
// fails. Concrete adapters live in gochunk/sizer (character count, a
// tiktoken-style model lookup, a pure-Go BPE tokenizer) or may be any
// user-supplied type, including one wrapping an expensive FFI call —
// the Packer memoizes the cumulative prefix sizes it computes while
// packing at one level, so a costly Sizer is asked at most once per
// candidate prefix during that level's search. Calls made at a finer
// level, by the minimum-growth step, or by overlap selection are not
// memoized and may repeat a byte range.
type Sizer interface {
	Size(text []byte) int
}

// SizerFunc adapts a plain function to the Sizer interface.
type SizerFunc func(text []byte) int

// Size implements Sizer.
func (f SizerFunc) Size(text []byte) int { return f(text) }
