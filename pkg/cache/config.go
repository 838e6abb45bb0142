package cache

import (
	"fmt"

	"github.com/c360/semsparql/errors"
)

// Strategy selects the cache implementation.
type Strategy string

const (
	// StrategyLRU bounds the cache by entry count.
	StrategyLRU Strategy = "lru"

	// StrategyNone disables caching.
	StrategyNone Strategy = "none"
)

// Config describes a cache in engine configuration files.
type Config struct {
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	MaxSize  int      `json:"max_size" yaml:"max_size"`
}

// DefaultConfig returns an LRU cache of the given size.
func DefaultConfig(maxSize int) Config {
	return Config{Strategy: StrategyLRU, MaxSize: maxSize}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyNone:
		return nil
	case StrategyLRU, "":
		if c.MaxSize <= 0 {
			return errors.WrapInvalid(
				fmt.Errorf("%w: max_size must be positive for LRU cache, got %d", errors.ErrInvalidConfig, c.MaxSize),
				"cache", "Validate", "size validation")
		}
		return nil
	default:
		return errors.WrapInvalid(
			fmt.Errorf("%w: unknown cache strategy %q", errors.ErrInvalidConfig, c.Strategy),
			"cache", "Validate", "strategy validation")
	}
}

// NewFromConfig creates the cache described by config. An empty strategy
// means LRU.
func NewFromConfig[V any](config Config, options ...Option[V]) (Cache[V], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Strategy == StrategyNone {
		return NewNoop[V](), nil
	}
	return NewLRU[V](config.MaxSize, options...)
}
