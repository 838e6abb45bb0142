package cache

import (
	"sync/atomic"
	"time"
)

// Statistics counts cache activity since creation. It is safe for
// concurrent use; readers see each counter atomically but a Summary is not a
// consistent cut across counters.
type Statistics struct {
	created time.Time

	hits, misses, sets, deletes, evictions atomic.Int64
	size, peak                             atomic.Int64
}

// NewStatistics starts a tracker at the current time.
func NewStatistics() *Statistics {
	return &Statistics{created: time.Now()}
}

func (s *Statistics) resize(n int64) {
	s.size.Store(n)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			return
		}
	}
}

// Hits is the number of lookups that found an entry.
func (s *Statistics) Hits() int64 { return s.hits.Load() }

// Misses is the number of lookups that found nothing.
func (s *Statistics) Misses() int64 { return s.misses.Load() }

// Evictions is the number of entries pushed out by capacity.
func (s *Statistics) Evictions() int64 { return s.evictions.Load() }

// CurrentSize is the entry count after the last mutation.
func (s *Statistics) CurrentSize() int64 { return s.size.Load() }

// MaxSize is the largest entry count ever observed.
func (s *Statistics) MaxSize() int64 { return s.peak.Load() }

// HitRatio is hits / (hits + misses), or 0 before the first lookup.
func (s *Statistics) HitRatio() float64 {
	hits, misses := s.Hits(), s.Misses()
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}

// StatsSummary is a snapshot of Statistics, shaped for JSON output.
type StatsSummary struct {
	Hits        int64         `json:"hits"`
	Misses      int64         `json:"misses"`
	Sets        int64         `json:"sets"`
	Deletes     int64         `json:"deletes"`
	Evictions   int64         `json:"evictions"`
	CurrentSize int64         `json:"current_size"`
	MaxSize     int64         `json:"max_size"`
	HitRatio    float64       `json:"hit_ratio"`
	Uptime      time.Duration `json:"uptime"`
}

func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Hits:        s.Hits(),
		Misses:      s.Misses(),
		Sets:        s.sets.Load(),
		Deletes:     s.deletes.Load(),
		Evictions:   s.Evictions(),
		CurrentSize: s.CurrentSize(),
		MaxSize:     s.MaxSize(),
		HitRatio:    s.HitRatio(),
		Uptime:      time.Since(s.created),
	}
}
