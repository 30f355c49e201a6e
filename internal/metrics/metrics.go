// Package metrics provides Prometheus collectors for event tracking and
// janitor operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricEventsTrackedTotal  = "events_tracked_total"
	MetricEventsDeletedTotal  = "events_deleted_total"
	MetricJanitorRunsTotal    = "janitor_runs_total"
)

// Status constants for tracking outcomes.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics contains Prometheus metrics for the analytics module.
// All operations are thread-safe.
type Metrics struct {
	eventsTracked *prometheus.CounterVec
	eventsDeleted prometheus.Counter
	janitorRuns   *prometheus.CounterVec
}

// NewMetrics creates and returns a new Metrics instance with all collectors
// initialized. The metrics are not registered; call Register to register
// them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		eventsTracked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricEventsTrackedTotal,
				Help: "Total number of tracking attempts by event type and status",
			},
			[]string{"event_type", "status"},
		),
		eventsDeleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricEventsDeletedTotal,
				Help: "Total number of event rows removed by retention cleanup",
			},
		),
		janitorRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricJanitorRunsTotal,
				Help: "Total number of janitor runs by status",
			},
			[]string{"status"},
		),
	}
}

// Register registers all collectors with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all collectors managed by this instance.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.eventsTracked, m.eventsDeleted, m.janitorRuns}
}

// IncEventsTracked records one tracking attempt.
func (m *Metrics) IncEventsTracked(eventType, status string) {
	m.eventsTracked.WithLabelValues(eventType, status).Inc()
}

// AddEventsDeleted records rows removed by a cleanup run.
func (m *Metrics) AddEventsDeleted(count float64) {
	m.eventsDeleted.Add(count)
}

// IncJanitorRuns records one janitor run.
func (m *Metrics) IncJanitorRuns(status string) {
	m.janitorRuns.WithLabelValues(status).Inc()
}
