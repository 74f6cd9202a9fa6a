package sizer

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// maxCallbackCacheEntries bounds Callback's memo table. Past this size the
// whole table is cleared rather than evicted piecemeal — chunking
// workloads re-visit identical boilerplate bursts (repeated headers,
// license blocks, generated code) in clusters, so a cheap full clear loses
// little compared to proper LRU bookkeeping.
const maxCallbackCacheEntries = 4096

// Callback wraps a user-supplied length function as a Sizer. Per
// SPEC_FULL.md §4.1 and the design note on FFI callbacks, calls are
// memoized by content hash (github.com/cespare/xxhash/v2, chosen over
// hashing the raw string as a map key so the cache doesn't retain a full
// copy of every distinct substring it has ever seen as a key) so a
// callback crossing a host-language boundary is not invoked again for
// byte-identical content while its result is cached, even across unrelated
// Packer calls. A result computed before a full clear is computed again.
//
// Fn must be pure and must not panic on valid input; if it does panic,
// the panic propagates unchanged out of Size, aborting the in-flight
// splitting call with no partial emission, per SPEC_FULL.md §7.
type Callback struct {
	Fn func([]byte) int

	mu    sync.Mutex
	cache map[uint64]int
}

// Size implements gochunk.Sizer.
func (c *Callback) Size(text []byte) int {
	h := xxhash.Sum64(text)

	c.mu.Lock()
	if c.cache == nil {
		c.cache = make(map[uint64]int)
	}
	if v, ok := c.cache[h]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	v := c.Fn(text)

	c.mu.Lock()
	if len(c.cache) >= maxCallbackCacheEntries {
		c.cache = make(map[uint64]int)
	}
	c.cache[h] = v
	c.mu.Unlock()

	return v
}
