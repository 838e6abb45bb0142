package worker

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semsparql/metric"
)

type testWork struct {
	id    int
	delay time.Duration
	fail  bool
}

func TestPool_StartStop(t *testing.T) {
	var processedCount atomic.Int64
	pool, err := NewPool(2, 10, func(_ context.Context, _ testWork) error {
		processedCount.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, pool.Start(ctx))
	assert.ErrorIs(t, pool.Start(ctx), ErrPoolAlreadyStarted)

	for i := 0; i < 5; i++ {
		require.NoError(t, pool.Submit(ctx, testWork{id: i}))
	}

	require.NoError(t, pool.Stop(5*time.Second))
	assert.Equal(t, int64(5), processedCount.Load(), "Stop drains the queue")

	assert.ErrorIs(t, pool.Submit(ctx, testWork{id: 999}), ErrPoolStopped)
	assert.NoError(t, pool.Stop(time.Second), "second Stop is a no-op")
}

func TestPool_NotStarted(t *testing.T) {
	pool, err := NewPool(1, 1, func(context.Context, testWork) error { return nil })
	require.NoError(t, err)

	assert.ErrorIs(t, pool.Submit(context.Background(), testWork{}), ErrPoolNotStarted)
	assert.ErrorIs(t, pool.TrySubmit(testWork{}), ErrPoolNotStarted)
	assert.NoError(t, pool.Stop(time.Second))
}

func TestNewPool_NilProcessor(t *testing.T) {
	_, err := NewPool[testWork](1, 1, nil)
	assert.ErrorIs(t, err, ErrNilProcessor)
}

func TestNewPool_Defaults(t *testing.T) {
	pool, err := NewPool(0, 0, func(context.Context, testWork) error { return nil })
	require.NoError(t, err)
	stats := pool.Stats()
	assert.Equal(t, 1, stats.Workers)
	assert.Equal(t, 2, stats.QueueSize)
}

func TestPool_TrySubmitQueueFull(t *testing.T) {
	release := make(chan struct{})
	pool, err := NewPool(1, 1, func(_ context.Context, _ testWork) error {
		<-release
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, pool.Start(context.Background()))

	var full bool
	for i := 0; i < 10 && !full; i++ {
		if err := pool.TrySubmit(testWork{id: i}); err != nil {
			require.ErrorIs(t, err, ErrQueueFull)
			full = true
		}
	}
	assert.True(t, full, "one busy worker and a queue of one must fill within ten submits")
	assert.GreaterOrEqual(t, pool.Stats().Dropped, int64(1))

	close(release)
	require.NoError(t, pool.Stop(5*time.Second))
}

func TestPool_SubmitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	pool, err := NewPool(1, 1, func(_ context.Context, _ testWork) error {
		<-release
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, pool.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var submitErr error
	for i := 0; i < 10 && submitErr == nil; i++ {
		submitErr = pool.Submit(ctx, testWork{id: i})
	}
	assert.ErrorIs(t, submitErr, context.DeadlineExceeded)
}

func TestPool_Stats(t *testing.T) {
	pool, err := NewPool(3, 20, func(_ context.Context, w testWork) error {
		if w.fail {
			return fmt.Errorf("work %d failed", w.id)
		}
		return nil
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, pool.Start(ctx))
	for i := 0; i < 10; i++ {
		require.NoError(t, pool.Submit(ctx, testWork{id: i, fail: i%4 == 0}))
	}
	require.NoError(t, pool.Stop(0))

	stats := pool.Stats()
	assert.Equal(t, 3, stats.Workers)
	assert.Equal(t, int64(10), stats.Submitted)
	assert.Equal(t, int64(10), stats.Processed)
	assert.Equal(t, int64(3), stats.Failed)
	assert.Equal(t, 0, stats.QueueDepth)
}

func TestPool_StopTimeout(t *testing.T) {
	pool, err := NewPool(1, 1, func(_ context.Context, w testWork) error {
		time.Sleep(w.delay)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, pool.Start(context.Background()))
	require.NoError(t, pool.Submit(context.Background(), testWork{delay: 500 * time.Millisecond}))

	err = pool.Stop(10 * time.Millisecond)
	assert.True(t, stderrors.Is(err, ErrStopTimeout))
}

func TestPool_Metrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	pool, err := NewPool(2, 4, func(context.Context, testWork) error { return nil },
		WithMetricsRegistry(registry, "rows"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, pool.Start(ctx))
	for i := 0; i < 3; i++ {
		require.NoError(t, pool.Submit(ctx, testWork{id: i}))
	}
	require.NoError(t, pool.Stop(0))

	var out strings.Builder
	require.NoError(t, registry.WriteText(&out))
	assert.Contains(t, out.String(), `rows_processed_total{status="success"} 3`)
	assert.Contains(t, out.String(), "rows_processing_duration_seconds_count 3")

	_, err = NewPool(1, 1, func(context.Context, testWork) error { return nil },
		WithMetricsRegistry(registry, "rows"))
	assert.Error(t, err, "duplicate prefix must not register twice")
}

func TestMap_PreservesOrder(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	results, err := Map(context.Background(), 8, items, func(_ context.Context, n int) string {
		if n%7 == 0 {
			time.Sleep(time.Millisecond)
		}
		return fmt.Sprintf("item-%d", n)
	})
	require.NoError(t, err)
	require.Len(t, results, 100)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("item-%d", i), r)
	}
}

func TestMap_Empty(t *testing.T) {
	results, err := Map(context.Background(), 4, nil, func(context.Context, int) int { return 1 })
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMap_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := make([]int, 50)
	_, err := Map(ctx, 2, items, func(context.Context, int) int { return 0 })
	assert.ErrorIs(t, err, context.Canceled)
}
