// Package batch provides the launch-all, await-all concurrency primitive
// used at every pipeline stage boundary.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run launches fn for indexes 0..n-1 with at most limit calls in flight
// and blocks until every call has returned. Results come back in launch
// order regardless of completion order. fn reports per-item failure
// through its result value, so Run itself never fails; a limit <= 0 means
// unbounded.
func Run[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) T) []T {
	if n <= 0 {
		return nil
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	results := make([]T, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i] = fn(gctx, i)
			return nil
		})
	}
	// No goroutine returns an error; Wait is just the join point.
	_ = g.Wait()

	return results
}
