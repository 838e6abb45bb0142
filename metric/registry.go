package metric

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/semsparql/errors"
)

// MetricsRegistrar is the registration surface handed to components that own
// collectors of their own, such as caches and worker pools.
type MetricsRegistrar interface {
	RegisterCounter(component, metricName string, counter prometheus.Counter) error
	RegisterGauge(component, metricName string, gauge prometheus.Gauge) error
	RegisterHistogram(component, metricName string, histogram prometheus.Histogram) error
	RegisterCounterVec(component, metricName string, counterVec *prometheus.CounterVec) error
	RegisterHistogramVec(component, metricName string, histogramVec *prometheus.HistogramVec) error
	Unregister(component, metricName string) bool
}

type metricKey struct {
	component, name string
}

// MetricsRegistry owns a private Prometheus registry preloaded with the
// engine's core metrics. Component metrics are tracked by (component, name)
// so that a second registration under the same pair is an Invalid error
// rather than a panic.
type MetricsRegistry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics

	mu         sync.RWMutex
	collectors map[metricKey]prometheus.Collector
}

func NewMetricsRegistry() *MetricsRegistry {
	core := NewMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		core.EvaluationsTotal,
		core.EvaluationDuration,
		core.ConstructionErrors,
		core.GeometryOperations,
	)
	return &MetricsRegistry{
		prometheusRegistry: reg,
		Metrics:            core,
		collectors:         make(map[metricKey]prometheus.Collector),
	}
}

func (r *MetricsRegistry) PrometheusRegistry() *prometheus.Registry { return r.prometheusRegistry }

// CoreMetrics returns the evaluation, construction and geometry metrics.
func (r *MetricsRegistry) CoreMetrics() *Metrics { return r.Metrics }

func (r *MetricsRegistry) RegisterCounter(component, metricName string, counter prometheus.Counter) error {
	return r.register("RegisterCounter", metricKey{component, metricName}, counter)
}

func (r *MetricsRegistry) RegisterGauge(component, metricName string, gauge prometheus.Gauge) error {
	return r.register("RegisterGauge", metricKey{component, metricName}, gauge)
}

func (r *MetricsRegistry) RegisterHistogram(component, metricName string, histogram prometheus.Histogram) error {
	return r.register("RegisterHistogram", metricKey{component, metricName}, histogram)
}

func (r *MetricsRegistry) RegisterCounterVec(component, metricName string, counterVec *prometheus.CounterVec) error {
	return r.register("RegisterCounterVec", metricKey{component, metricName}, counterVec)
}

func (r *MetricsRegistry) RegisterHistogramVec(
	component, metricName string, histogramVec *prometheus.HistogramVec) error {
	return r.register("RegisterHistogramVec", metricKey{component, metricName}, histogramVec)
}

func (r *MetricsRegistry) register(method string, key metricKey, c prometheus.Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.collectors[key]; dup {
		return errors.WrapInvalid(
			fmt.Errorf("metric %s already registered for component %s", key.name, key.component),
			"MetricsRegistry", method, "duplicate metric registration")
	}

	err := r.prometheusRegistry.Register(c)
	var clash prometheus.AlreadyRegisteredError
	switch {
	case err == nil:
		r.collectors[key] = c
		return nil
	case stderrors.As(err, &clash):
		// Same fully qualified name under another component.
		return errors.WrapInvalid(err, "MetricsRegistry", method,
			fmt.Sprintf("prometheus conflict for metric %s", key.name))
	default:
		return errors.WrapFatal(err, "MetricsRegistry", method, "prometheus registration")
	}
}

// Unregister removes a component metric. It reports false when the pair was
// never registered or Prometheus no longer knows the collector.
func (r *MetricsRegistry) Unregister(component, metricName string) bool {
	key := metricKey{component, metricName}

	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.collectors[key]
	if !ok || !r.prometheusRegistry.Unregister(c) {
		return false
	}
	delete(r.collectors, key)
	return true
}
