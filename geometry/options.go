package geometry

import (
	"fmt"
	"log/slog"

	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/metric"
	"github.com/c360/semsparql/pkg/cache"
)

const (
	// DefaultSegments is the number of segments approximating a buffer circle.
	DefaultSegments = 32

	// MinSegments is the coarsest accepted circle approximation.
	MinSegments = 4

	// DefaultCacheSize is the number of parsed geometries kept by default.
	DefaultCacheSize = 256
)

// Option is a functional option for configuring the Engine
type Option func(*Engine) error

// WithLogger sets the logger used for debug output on rejected literals
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithSegments sets how many segments approximate each buffer circle
func WithSegments(n int) Option {
	return func(e *Engine) error {
		if n < MinSegments {
			return errors.WrapInvalid(
				fmt.Errorf("%w: buffer segments must be at least %d, got %d", errors.ErrInvalidConfig, MinSegments, n),
				"geometry", "WithSegments", "option validation")
		}
		e.segments = n
		return nil
	}
}

// WithCacheSize bounds the parse cache. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(e *Engine) error {
		if n < 0 {
			return errors.WrapInvalid(
				fmt.Errorf("%w: cache size must not be negative, got %d", errors.ErrInvalidConfig, n),
				"geometry", "WithCacheSize", "option validation")
		}
		if n == 0 {
			e.cacheConfig = cache.Config{Strategy: cache.StrategyNone}
			return nil
		}
		e.cacheConfig = cache.DefaultConfig(n)
		return nil
	}
}

// WithCacheConfig sets the parse cache configuration
func WithCacheConfig(config cache.Config) Option {
	return func(e *Engine) error {
		if err := config.Validate(); err != nil {
			return err
		}
		e.cacheConfig = config
		return nil
	}
}

// WithMetrics records geometry operations and cache statistics in registry
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(e *Engine) error {
		e.registry = registry
		return nil
	}
}
