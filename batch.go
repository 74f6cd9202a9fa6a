package gochunk

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch runs Splitter.ChunkIndices over many independent inputs
// concurrently. Per SPEC_FULL.md §5, a single splitting operation has no
// suspension points and runs to completion synchronously; Batch is purely
// additive convenience for the documented "multiple splitting operations
// may run in parallel on distinct inputs" allowance, bounded by
// golang.org/x/sync/errgroup so a panic or cancellation in one goroutine
// doesn't leak the rest.
//
// maxConcurrency bounds the number of simultaneous splits; 0 means
// unbounded. The returned slice preserves the order of texts. If ctx is
// canceled, Batch returns ctx.Err() once in-flight splits unwind.
func Batch(ctx context.Context, splitter *Splitter, texts []string, maxConcurrency int) ([][]ChunkIndex, error) {
	results := make([][]ChunkIndex, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}

	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = splitter.ChunkIndices(text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
