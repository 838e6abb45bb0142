package metric

import (
	"io"

	"github.com/prometheus/common/expfmt"

	"github.com/c360/semsparql/errors"
)

// WriteText gathers every registered metric and writes it to w in the
// Prometheus text exposition format.
func (r *MetricsRegistry) WriteText(w io.Writer) error {
	families, err := r.prometheusRegistry.Gather()
	if err != nil {
		return errors.WrapTransient(err, "MetricsRegistry", "WriteText", "gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.WrapTransient(err, "MetricsRegistry", "WriteText", "encode metric family")
		}
	}
	return nil
}
