// Package cache provides generic, thread-safe caches used by the expression
// engine to reuse parsed geometries and compiled regular expressions across
// binding rows.
//
// Two implementations exist:
//   - LRU: bounded by entry count, evicting the least recently used entry
//   - Noop: always misses, used when caching is disabled by configuration
//
// Statistics are always collected. Prometheus metrics are optional and
// enabled with WithMetrics.
package cache

import (
	"github.com/c360/semsparql/errors"
)

// Cache is a generic keyed cache parameterized by value type V.
type Cache[V any] interface {
	// Get retrieves a value by key.
	Get(key string) (V, bool)

	// Set stores a value. It reports true when a new entry was created and
	// false when an existing one was replaced.
	Set(key string, value V) (bool, error)

	// Delete removes an entry and reports whether it existed.
	Delete(key string) (bool, error)

	// Clear removes all entries.
	Clear() error

	// Size returns the current number of entries.
	Size() int

	// Keys returns the keys currently cached, most recently used first.
	Keys() []string

	// Stats returns the cache statistics, nil for a disabled cache.
	Stats() *Statistics
}

// EvictCallback is called with the key and value of every entry removed
// from the cache.
type EvictCallback[V any] func(key string, value V)

// GetOrCreate returns the cached value for key, or builds it with create and
// caches the result. Errors from create are returned uncached.
func GetOrCreate[V any](c Cache[V], key string, create func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := create()
	if err != nil {
		return v, err
	}
	if _, err := c.Set(key, v); err != nil {
		return v, err
	}
	return v, nil
}

// NewNoop creates a cache that stores nothing.
func NewNoop[V any]() Cache[V] {
	return noopCache[V]{}
}

type noopCache[V any] struct{}

func (noopCache[V]) Get(string) (V, bool) {
	var zero V
	return zero, false
}

func (noopCache[V]) Set(string, V) (bool, error) { return false, nil }
func (noopCache[V]) Delete(string) (bool, error) { return false, nil }
func (noopCache[V]) Clear() error                { return nil }
func (noopCache[V]) Size() int                   { return 0 }
func (noopCache[V]) Keys() []string              { return nil }
func (noopCache[V]) Stats() *Statistics          { return nil }

func validateKey(key string) error {
	if key == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "cache", "validateKey", "key cannot be empty")
	}
	return nil
}
