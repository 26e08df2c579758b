// Package prometheus records preview lifecycle metrics with the Prometheus client.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.PreviewMetrics = (*Metrics)(nil)

// Session outcomes used as the "outcome" label.
const (
	OutcomeAccepted    = "accepted"
	OutcomeDiscarded   = "discarded"
	OutcomePrecomputed = "precomputed"
)

// Metrics is a driven.PreviewMetrics backed by a Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	sessionsStarted prometheus.Counter
	sessionsEnded   *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
}

// New registers the lifecycle metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		sessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "linkcard_sessions_started_total",
			Help: "The total number of fetch sessions started",
		}),
		sessionsEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "linkcard_sessions_total",
			Help: "The total number of preview lifecycles by outcome",
		}, []string{"outcome"}),
		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "linkcard_fetch_duration_seconds",
			Help:    "Duration of preview fetches",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
	}
}

// SessionStarted counts a new fetch session.
func (m *Metrics) SessionStarted() {
	m.sessionsStarted.Inc()
}

// SessionAccepted counts a result that reached state.
func (m *Metrics) SessionAccepted() {
	m.sessionsEnded.WithLabelValues(OutcomeAccepted).Inc()
}

// SessionDiscarded counts a stale result.
func (m *Metrics) SessionDiscarded() {
	m.sessionsEnded.WithLabelValues(OutcomeDiscarded).Inc()
}

// PrecomputedAdopted counts a lifecycle that used precomputed data.
func (m *Metrics) PrecomputedAdopted() {
	m.sessionsEnded.WithLabelValues(OutcomePrecomputed).Inc()
}

// FetchDuration observes how long a fetch took.
func (m *Metrics) FetchDuration(d time.Duration) {
	m.fetchDuration.Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
