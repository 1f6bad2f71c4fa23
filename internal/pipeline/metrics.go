package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"docview/internal/model"
)

// Outcome labels for documents_processed_total.
const (
	OutcomeAssembled = "assembled"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Metrics counts pipeline attempts by content type and outcome.
type Metrics struct {
	processed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics registers the pipeline collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		processed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_processed_total",
				Help: "Total number of documents run through the pipeline.",
			},
			[]string{"type", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "document_processing_duration_seconds",
				Help:    "Time from validation to an assembled or failed document.",
				Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"type"},
		),
	}
	for _, c := range []prometheus.Collector{m.processed, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// observe is safe on a nil receiver so metrics stay optional.
func (m *Metrics) observe(t model.ContentType, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := string(t)
	if label == "" {
		label = "unknown"
	}
	m.processed.WithLabelValues(label, outcome).Inc()
	if outcome != OutcomeRejected {
		m.duration.WithLabelValues(label).Observe(elapsed.Seconds())
	}
}
