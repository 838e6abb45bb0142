package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/semsparql/metric"
)

// cacheMetrics mirrors Statistics into Prometheus.
type cacheMetrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	sets      prometheus.Counter
	deletes   prometheus.Counter
	evictions prometheus.Counter
	size      prometheus.Gauge
}

func newCacheMetrics(registry *metric.MetricsRegistry, prefix string) (*cacheMetrics, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metric.Namespace,
			Subsystem:   "cache",
			Name:        name,
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        help,
		})
	}

	m := &cacheMetrics{
		hits:      counter("hits_total", "Total number of cache hits"),
		misses:    counter("misses_total", "Total number of cache misses"),
		sets:      counter("sets_total", "Total number of cache set operations"),
		deletes:   counter("deletes_total", "Total number of cache delete operations"),
		evictions: counter("evictions_total", "Total number of cache evictions"),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metric.Namespace,
			Subsystem:   "cache",
			Name:        "size",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Current number of entries in cache",
		}),
	}

	counters := []struct {
		name string
		c    prometheus.Counter
	}{
		{"cache_hits", m.hits},
		{"cache_misses", m.misses},
		{"cache_sets", m.sets},
		{"cache_deletes", m.deletes},
		{"cache_evictions", m.evictions},
	}
	for _, c := range counters {
		if err := registry.RegisterCounter(prefix, c.name, c.c); err != nil {
			return nil, err
		}
	}
	if err := registry.RegisterGauge(prefix, "cache_size", m.size); err != nil {
		return nil, err
	}
	return m, nil
}

// recorder feeds both the always-on statistics and the optional metrics.
type recorder struct {
	stats   *Statistics
	metrics *cacheMetrics
}

func (r recorder) hit() {
	r.stats.hits.Add(1)
	if r.metrics != nil {
		r.metrics.hits.Inc()
	}
}

func (r recorder) miss() {
	r.stats.misses.Add(1)
	if r.metrics != nil {
		r.metrics.misses.Inc()
	}
}

func (r recorder) set() {
	r.stats.sets.Add(1)
	if r.metrics != nil {
		r.metrics.sets.Inc()
	}
}

func (r recorder) delete() {
	r.stats.deletes.Add(1)
	if r.metrics != nil {
		r.metrics.deletes.Inc()
	}
}

func (r recorder) eviction() {
	r.stats.evictions.Add(1)
	if r.metrics != nil {
		r.metrics.evictions.Inc()
	}
}

func (r recorder) size(n int) {
	r.stats.resize(int64(n))
	if r.metrics != nil {
		r.metrics.size.Set(float64(n))
	}
}
