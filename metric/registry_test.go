package metric

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semsparql/errors"
)

func gatheredNames(t *testing.T, registry *MetricsRegistry) map[string]bool {
	t.Helper()
	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	return names
}

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.PrometheusRegistry())
	assert.NotNil(t, registry.CoreMetrics())
}

func TestMetricsRegistry_Register(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_counter", Help: "A test counter"})
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_gauge", Help: "A test gauge"})
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "test_histogram", Help: "A test histogram"})

	require.NoError(t, registry.RegisterCounter("test", "test_counter", counter))
	require.NoError(t, registry.RegisterGauge("test", "test_gauge", gauge))
	require.NoError(t, registry.RegisterHistogram("test", "test_histogram", histogram))

	counter.Inc()
	gauge.Set(42)
	histogram.Observe(0.5)

	names := gatheredNames(t, registry)
	assert.True(t, names["test_counter"])
	assert.True(t, names["test_gauge"])
	assert.True(t, names["test_histogram"])
}

func TestMetricsRegistry_PreventDuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	counter1 := prometheus.NewCounter(prometheus.CounterOpts{Name: "duplicate_counter", Help: "First counter"})
	counter2 := prometheus.NewCounter(prometheus.CounterOpts{Name: "duplicate_counter", Help: "First counter"})

	require.NoError(t, registry.RegisterCounter("component1", "duplicate_counter", counter1))

	err := registry.RegisterCounter("component1", "duplicate_counter", counter2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate metric registration")
	assert.True(t, errors.IsInvalid(err))

	err = registry.RegisterCounter("component2", "duplicate_counter", counter2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prometheus conflict")
}

func TestMetricsRegistry_UnregisterMetric(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "unregister_counter", Help: "A counter to unregister"})
	require.NoError(t, registry.RegisterCounter("test", "unregister_counter", counter))
	assert.True(t, gatheredNames(t, registry)["unregister_counter"])

	assert.True(t, registry.Unregister("test", "unregister_counter"))
	assert.False(t, gatheredNames(t, registry)["unregister_counter"])
	assert.False(t, registry.Unregister("test", "unregister_counter"))
}

func TestMetricsRegistry_ThreadSafety(t *testing.T) {
	registry := NewMetricsRegistry()

	var wg sync.WaitGroup
	numGoroutines := 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			name := fmt.Sprintf("concurrent_counter_%d", id)
			counter := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: "A concurrent counter"})
			assert.NoError(t, registry.RegisterCounter("concurrent", name, counter))
		}(i)
	}
	wg.Wait()

	count := 0
	for name := range gatheredNames(t, registry) {
		if strings.HasPrefix(name, "concurrent_counter_") {
			count++
		}
	}
	assert.Equal(t, numGoroutines, count)
}

func TestMetricsRegistrar_Interface(t *testing.T) {
	var registrar MetricsRegistrar = NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "interface_counter", Help: "Counter registered through interface"})
	require.NoError(t, registrar.RegisterCounter("interface", "interface_counter", counter))
}

func TestCoreMetrics_RecordMethods(t *testing.T) {
	registry := NewMetricsRegistry()
	core := registry.CoreMetrics()

	core.RecordEvaluation("ADD", true, 20*time.Microsecond)
	core.RecordEvaluation("ADD", false, 5*time.Microsecond)
	core.RecordConstructionError("REGEX")
	core.RecordGeometryOperation("buffer", true)

	names := gatheredNames(t, registry)
	for _, expected := range []string{
		"sparqlexpr_expression_evaluations_total",
		"sparqlexpr_expression_evaluation_duration_seconds",
		"sparqlexpr_expression_construction_errors_total",
		"sparqlexpr_geometry_operations_total",
	} {
		assert.True(t, names[expected], "core metric %s should be exported", expected)
	}
}

func TestMetricsRegistry_WriteText(t *testing.T) {
	registry := NewMetricsRegistry()
	registry.CoreMetrics().RecordEvaluation("MD5", true, time.Microsecond)

	var buf bytes.Buffer
	require.NoError(t, registry.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE sparqlexpr_expression_evaluations_total counter")
	assert.Contains(t, out, `sparqlexpr_expression_evaluations_total{operator="MD5",outcome="value"} 1`)
}
