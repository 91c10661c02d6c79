package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the stage engine.
type Metrics struct {
	Transitions     *prometheus.CounterVec
	Inconsistencies prometheus.Counter
	MissingActions  *prometheus.CounterVec
	NotifyFailures  prometheus.Counter
	AdvanceDuration prometheus.Histogram
}

// New registers all stage engine metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "appealboard_stage_transitions_total",
			Help: "Total number of committed stage transitions",
		}, []string{"from", "to"}),
		Inconsistencies: promauto.NewCounter(prometheus.CounterOpts{
			Name: "appealboard_stage_inconsistencies_total",
			Help: "Cases whose stored stage no longer matches any qualifying predicate",
		}),
		MissingActions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "appealboard_stage_missing_actions_total",
			Help: "Transitions committed without a registered entry action",
		}, []string{"code"}),
		NotifyFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "appealboard_stage_notify_failures_total",
			Help: "Notification deliveries that failed after a committed transition",
		}),
		AdvanceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "appealboard_stage_advance_duration_seconds",
			Help:    "Duration of orchestrated transition attempts, no-ops included",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// RecordTransition counts one committed stage change.
func (m *Metrics) RecordTransition(from, to int) {
	m.Transitions.WithLabelValues(strconv.Itoa(from), strconv.Itoa(to)).Inc()
}

// RecordMissingAction counts a transition into a step with no entry action.
func (m *Metrics) RecordMissingAction(code int) {
	m.MissingActions.WithLabelValues(strconv.Itoa(code)).Inc()
}

// ObserveAdvance records the duration of one Advance call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAdvance(start time.Time) {
	m.AdvanceDuration.Observe(time.Since(start).Seconds())
}
