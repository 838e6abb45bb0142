// Package worker provides a generic worker pool and an order-preserving
// parallel Map built on it.
//
// # Pool
//
// A Pool runs one processor function over work items on a fixed number of
// goroutines fed by a bounded queue:
//
//	pool, err := worker.NewPool(4, 16, func(ctx context.Context, row binding.Row) error {
//	    _, _ = evaluator.Evaluate(x, row)
//	    return nil
//	})
//	if err != nil {
//	    return err
//	}
//	if err := pool.Start(ctx); err != nil {
//	    return err
//	}
//	for _, row := range rows {
//	    if err := pool.Submit(ctx, row); err != nil {
//	        return err
//	    }
//	}
//	return pool.Stop(0)
//
// Submit blocks while the queue is full. TrySubmit returns ErrQueueFull
// instead, for callers that prefer to shed load.
//
// Statistics are always tracked with atomics and available from Stats.
// Prometheus metrics are registered only when WithMetricsRegistry is given.
//
// # Map
//
// Map evaluates a function over a slice and returns the results in input
// order, whatever order the workers finish in:
//
//	values, err := worker.Map(ctx, 8, rows, func(_ context.Context, row binding.Row) string {
//	    term, ok := evaluator.Evaluate(x, row)
//	    if !ok {
//	        return ""
//	    }
//	    return term.String()
//	})
//
// # Shutdown
//
// Stop closes the queue and waits for queued items to drain. Cancelling the
// context passed to Start makes workers exit without draining.
package worker
