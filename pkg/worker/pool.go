package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/semsparql/metric"
)

// Pool runs a processor over submitted work items on a fixed number of
// goroutines.
type Pool[T any] struct {
	workers   int
	queueSize int
	processor func(context.Context, T) error

	workChan chan T
	metrics  *poolMetrics
	wg       sync.WaitGroup

	// Submit holds the read lock while sending so Stop never closes the
	// channel under a pending send.
	lifecycleMu sync.RWMutex
	started     bool
	stopped     bool

	submitted atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

type poolMetrics struct {
	queueDepth     prometheus.Gauge
	processed      *prometheus.CounterVec
	processingTime prometheus.Histogram
}

type settings struct {
	registry *metric.MetricsRegistry
	prefix   string
}

// Option configures a pool
type Option func(*settings)

// WithMetricsRegistry registers the pool's metrics under prefix
func WithMetricsRegistry(registry *metric.MetricsRegistry, prefix string) Option {
	return func(s *settings) {
		s.registry = registry
		s.prefix = prefix
	}
}

// NewPool creates a pool. Non-positive workers or queueSize fall back to
// one worker and a queue twice the worker count.
func NewPool[T any](workers, queueSize int, processor func(context.Context, T) error, opts ...Option) (*Pool[T], error) {
	if processor == nil {
		return nil, ErrNilProcessor
	}
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 2 * workers
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	pool := &Pool[T]{
		workers:   workers,
		queueSize: queueSize,
		processor: processor,
		workChan:  make(chan T, queueSize),
	}

	if s.registry != nil && s.prefix != "" {
		m, err := registerMetrics(s.registry, s.prefix)
		if err != nil {
			return nil, err
		}
		pool.metrics = m
	}
	return pool, nil
}

func registerMetrics(registry *metric.MetricsRegistry, prefix string) (*poolMetrics, error) {
	m := &poolMetrics{
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_queue_depth",
			Help: "Work items waiting for a worker",
		}),
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_processed_total",
			Help: "Work items processed by status",
		}, []string{"status"}),
		processingTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    prefix + "_processing_duration_seconds",
			Help:    "Time spent processing one work item",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}

	const component = "worker_pool"
	if err := registry.RegisterGauge(component, prefix+"_queue_depth", m.queueDepth); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(component, prefix+"_processed_total", m.processed); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram(component, prefix+"_processing_duration_seconds", m.processingTime); err != nil {
		return nil, err
	}
	return m, nil
}

// Start launches the workers. They exit when ctx is cancelled or the pool
// is stopped.
func (p *Pool[T]) Start(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.started {
		return ErrPoolAlreadyStarted
	}

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
	p.started = true
	return nil
}

// Submit queues work, blocking while the queue is full.
func (p *Pool[T]) Submit(ctx context.Context, work T) error {
	p.lifecycleMu.RLock()
	defer p.lifecycleMu.RUnlock()

	if err := p.checkOpen(); err != nil {
		return err
	}

	select {
	case p.workChan <- work:
		p.accepted()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit queues work without blocking. Returns ErrQueueFull when the
// queue is at capacity.
func (p *Pool[T]) TrySubmit(work T) error {
	p.lifecycleMu.RLock()
	defer p.lifecycleMu.RUnlock()

	if err := p.checkOpen(); err != nil {
		return err
	}

	select {
	case p.workChan <- work:
		p.accepted()
		return nil
	default:
		p.dropped.Add(1)
		return ErrQueueFull
	}
}

func (p *Pool[T]) checkOpen() error {
	if !p.started {
		return ErrPoolNotStarted
	}
	if p.stopped {
		return ErrPoolStopped
	}
	return nil
}

func (p *Pool[T]) accepted() {
	p.submitted.Add(1)
	if p.metrics != nil {
		p.metrics.queueDepth.Set(float64(len(p.workChan)))
	}
}

// Stop closes the queue and waits for queued work to drain. A
// non-positive timeout waits without limit.
func (p *Pool[T]) Stop(timeout time.Duration) error {
	p.lifecycleMu.Lock()
	if !p.started || p.stopped {
		p.lifecycleMu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.workChan)
	p.lifecycleMu.Unlock()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		p.wg.Wait()
	}()

	var deadline <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		deadline = t.C
	}
	select {
	case <-drained:
		return nil
	case <-deadline:
		return fmt.Errorf("%w after %s", ErrStopTimeout, timeout)
	}
}

// Stats reads the counters without locking; fields may be mutually
// inconsistent while work is in flight.
func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{
		Workers:    p.workers,
		QueueSize:  p.queueSize,
		QueueDepth: len(p.workChan),
		Submitted:  p.submitted.Load(),
		Processed:  p.processed.Load(),
		Failed:     p.failed.Load(),
		Dropped:    p.dropped.Load(),
	}
}

// PoolStats is a snapshot returned by Stats.
type PoolStats struct {
	Workers    int   `json:"workers"`
	QueueSize  int   `json:"queue_size"`
	QueueDepth int   `json:"queue_depth"`
	Submitted  int64 `json:"submitted"`
	Processed  int64 `json:"processed"`
	Failed     int64 `json:"failed"`
	Dropped    int64 `json:"dropped"`
}

func (p *Pool[T]) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case work, ok := <-p.workChan:
			if !ok {
				return
			}
			p.process(ctx, work)
		}
	}
}

func (p *Pool[T]) process(ctx context.Context, work T) {
	began := time.Now()
	err := p.processor(ctx, work)
	p.processed.Add(1)

	status := "success"
	if err != nil {
		p.failed.Add(1)
		status = "error"
	}
	if m := p.metrics; m != nil {
		m.processed.WithLabelValues(status).Inc()
		m.processingTime.Observe(time.Since(began).Seconds())
		m.queueDepth.Set(float64(len(p.workChan)))
	}
}
