// Package convexhull runs convex hull queries in parallel: batched support queries on
// one shape, and GJK overlap tests over many body pairs.
//
// Shapes must be fully built before being handed to this package. Support queries on a
// shared shape are safe from several workers at once.
package convexhull

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const DEFAULT_WORKERS = 1

// task splits data into one contiguous chunk per worker and calls fn on every item.
// The first error cancels the chunks still running and is returned.
func task[T any](ctx context.Context, workersCount int, data []T, fn func(i int, item T) error) error {
	workersCount = max(DEFAULT_WORKERS, workersCount)
	dataSize := len(data)
	if dataSize == 0 {
		return nil
	}
	chunkSize := (dataSize + workersCount - 1) / workersCount

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < dataSize; start += chunkSize {
		end := min(start+chunkSize, dataSize)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(i, data[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
