package worker

import (
	"context"
)

// Map applies fn to every item on up to workers goroutines and returns the
// results in input order. It fails only when ctx is cancelled before every
// item has been processed.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) R, opts ...Option) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	// Each index is written by exactly one worker, so results needs no lock.
	pool, err := NewPool(workers, 2*workers, func(ctx context.Context, i int) error {
		results[i] = fn(ctx, items[i])
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if err := pool.Start(ctx); err != nil {
		return nil, err
	}

	for i := range items {
		if err := pool.Submit(ctx, i); err != nil {
			_ = pool.Stop(0)
			return nil, err
		}
	}
	if err := pool.Stop(0); err != nil {
		return nil, err
	}

	if pool.Stats().Processed < int64(len(items)) {
		return nil, ctx.Err()
	}
	return results, nil
}
