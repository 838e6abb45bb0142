// Package metric provides the Prometheus metrics of the expression engine.
//
// A MetricsRegistry wraps a dedicated prometheus.Registry (never the global
// default registry) and carries the core engine metrics:
//
//	sparqlexpr_expression_evaluations_total{operator,outcome}
//	sparqlexpr_expression_evaluation_duration_seconds{operator}
//	sparqlexpr_expression_construction_errors_total{operator}
//	sparqlexpr_geometry_operations_total{operation,outcome}
//
// Outcome is "value" when an evaluation produced a term and "none" when it
// yielded no result for the row.
//
// Components register their own collectors through the MetricsRegistrar
// interface. Registration keys are "component.metric"; registering the same
// key twice returns an Invalid error, as does a name clash inside Prometheus.
//
//	registry := metric.NewMetricsRegistry()
//	eval := expression.NewEvaluator(expression.WithMetrics(registry))
//	...
//	_ = registry.WriteText(os.Stderr)
//
// WriteText renders every gathered family in the Prometheus text exposition
// format, which is how the sparqlexpr command reports metrics after a run.
package metric
