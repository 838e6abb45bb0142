package cache

import (
	"github.com/c360/semsparql/metric"
)

// Option adjusts a cache at construction.
type Option[V any] func(*settings[V])

type settings[V any] struct {
	registry  *metric.MetricsRegistry
	component string
	onEvict   EvictCallback[V]
}

// WithMetrics exports the cache's counters to registry under the given
// component label. Nothing is exported when either argument is empty.
func WithMetrics[V any](registry *metric.MetricsRegistry, component string) Option[V] {
	return func(s *settings[V]) {
		if registry == nil || component == "" {
			return
		}
		s.registry, s.component = registry, component
	}
}

// WithEvictionCallback runs fn for every entry that leaves the cache,
// whether by eviction, Delete or Clear.
func WithEvictionCallback[V any](fn EvictCallback[V]) Option[V] {
	return func(s *settings[V]) { s.onEvict = fn }
}

func collect[V any](options []Option[V]) settings[V] {
	var s settings[V]
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
