package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/metric"
)

func TestLRUCache_BasicOperations(t *testing.T) {
	c, err := NewLRU[string](10)
	require.NoError(t, err)

	_, ok := c.Get("key1")
	assert.False(t, ok)

	isNew, err := c.Set("key1", "value1")
	require.NoError(t, err)
	assert.True(t, isNew)

	v, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", v)

	isNew, err = c.Set("key1", "value1_updated")
	require.NoError(t, err)
	assert.False(t, isNew)

	v, _ = c.Get("key1")
	assert.Equal(t, "value1_updated", v)

	deleted, err := c.Delete("key1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = c.Delete("key1")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 0, c.Size())
}

func TestLRUCache_Eviction(t *testing.T) {
	var evicted []string
	c, err := NewLRU[int](3, WithEvictionCallback[int](func(key string, _ int) {
		evicted = append(evicted, key)
	}))
	require.NoError(t, err)

	for i, key := range []string{"a", "b", "c"} {
		_, _ = c.Set(key, i)
	}

	// touching "a" makes "b" the least recently used
	_, _ = c.Get("a")
	_, _ = c.Set("d", 3)

	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, []string{"d", "a", "c"}, c.Keys())
	assert.Equal(t, int64(1), c.Stats().Evictions())
}

func TestLRUCache_ClearInvokesCallback(t *testing.T) {
	count := 0
	c, err := NewLRU[int](5, WithEvictionCallback[int](func(string, int) { count++ }))
	require.NoError(t, err)

	_, _ = c.Set("a", 1)
	_, _ = c.Set("b", 2)
	require.NoError(t, c.Clear())

	assert.Equal(t, 2, count)
	assert.Equal(t, 0, c.Size())
	assert.Equal(t, int64(0), c.Stats().CurrentSize())
	assert.Equal(t, int64(2), c.Stats().MaxSize())
}

func TestLRUCache_InvalidInput(t *testing.T) {
	_, err := NewLRU[int](0)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	c, err := NewLRU[int](1)
	require.NoError(t, err)
	_, err = c.Set("", 1)
	assert.Error(t, err)
}

func TestLRUCache_Statistics(t *testing.T) {
	c, err := NewLRU[string](10)
	require.NoError(t, err)

	_, _ = c.Set("k", "v")
	_, _ = c.Get("k")
	_, _ = c.Get("k")
	_, _ = c.Get("missing")

	stats := c.Stats().Summary()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.InDelta(t, 2.0/3.0, stats.HitRatio, 1e-9)
}

func TestLRUCache_Concurrency(t *testing.T) {
	c, err := NewLRU[int](50)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (id*200+i)%100)
				_, _ = c.Set(key, i)
				_, _ = c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Size(), 50)
}

func TestGetOrCreate(t *testing.T) {
	c, err := NewLRU[int](4)
	require.NoError(t, err)

	calls := 0
	create := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := GetOrCreate(c, "answer", create)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = GetOrCreate(c, "answer", create)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	_, err = GetOrCreate(c, "broken", func() (int, error) { return 0, fmt.Errorf("boom") })
	assert.Error(t, err)
	_, ok := c.Get("broken")
	assert.False(t, ok)
}

func TestNoopCache(t *testing.T) {
	c := NewNoop[string]()

	isNew, err := c.Set("k", "v")
	require.NoError(t, err)
	assert.False(t, isNew)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Nil(t, c.Stats())
	assert.Equal(t, 0, c.Size())
}

func TestConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		noop    bool
	}{
		{"default", DefaultConfig(16), false, false},
		{"empty strategy means lru", Config{MaxSize: 8}, false, false},
		{"disabled", Config{Strategy: StrategyNone}, false, true},
		{"lru without size", Config{Strategy: StrategyLRU}, true, false},
		{"unknown strategy", Config{Strategy: "ttl", MaxSize: 4}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewFromConfig[string](tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalid(err))
				return
			}
			require.NoError(t, err)
			if tt.noop {
				assert.Nil(t, c.Stats())
			} else {
				assert.NotNil(t, c.Stats())
			}
		})
	}
}

func TestCacheMetricsIntegration(t *testing.T) {
	registry := metric.NewMetricsRegistry()

	c, err := NewLRU[string](2, WithMetrics[string](registry, "geometry"))
	require.NoError(t, err)

	_, _ = c.Set("a", "1")
	_, _ = c.Get("a")
	_, _ = c.Get("b")

	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, 1.0, values["sparqlexpr_cache_hits_total"])
	assert.Equal(t, 1.0, values["sparqlexpr_cache_misses_total"])
	assert.Equal(t, 1.0, values["sparqlexpr_cache_size"])

	_, err = NewLRU[string](2, WithMetrics[string](registry, "geometry"))
	assert.Error(t, err, "registering the same component twice must fail")
}
