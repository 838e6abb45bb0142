package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric exported by the engine.
const Namespace = "sparqlexpr"

// Evaluation outcomes
const (
	OutcomeValue = "value"
	OutcomeNone  = "none"
)

// Metrics contains the engine-level metrics shared by every expression tree
type Metrics struct {
	EvaluationsTotal   *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
	ConstructionErrors *prometheus.CounterVec
	GeometryOperations *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		EvaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "expression",
				Name:      "evaluations_total",
				Help:      "Total number of expression evaluations by root operator and outcome",
			},
			[]string{"operator", "outcome"},
		),

		EvaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "expression",
				Name:      "evaluation_duration_seconds",
				Help:      "Expression evaluation duration in seconds",
				Buckets:   []float64{.000001, .00001, .0001, .001, .01, .1, 1},
			},
			[]string{"operator"},
		),

		ConstructionErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "expression",
				Name:      "construction_errors_total",
				Help:      "Total number of rejected expression constructions",
			},
			[]string{"operator"},
		),

		GeometryOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "geometry",
				Name:      "operations_total",
				Help:      "Total number of geometry operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}
}

// RecordEvaluation counts one evaluation and observes its duration
func (c *Metrics) RecordEvaluation(operator string, produced bool, duration time.Duration) {
	c.EvaluationsTotal.WithLabelValues(operator, outcome(produced)).Inc()
	c.EvaluationDuration.WithLabelValues(operator).Observe(duration.Seconds())
}

// RecordConstructionError increments the construction error counter
func (c *Metrics) RecordConstructionError(operator string) {
	c.ConstructionErrors.WithLabelValues(operator).Inc()
}

// RecordGeometryOperation counts one geometry operation
func (c *Metrics) RecordGeometryOperation(operation string, produced bool) {
	c.GeometryOperations.WithLabelValues(operation, outcome(produced)).Inc()
}

func outcome(produced bool) string {
	if produced {
		return OutcomeValue
	}
	return OutcomeNone
}
