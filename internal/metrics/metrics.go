// Package metrics exposes Prometheus collectors for vanity search jobs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "btcvanity"

// Metrics holds the search collectors. A nil *Metrics is valid and records
// nothing, so callers never need to guard.
type Metrics struct {
	attempts    prometheus.Counter
	jobs        *prometheus.CounterVec
	running     prometheus.Gauge
	jobDuration *prometheus.HistogramVec
}

// New registers the search collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		attempts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "attempts_total",
			Help:      "Total number of keys generated and checked",
		}),
		jobs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "jobs_total",
			Help:      "Search jobs by terminal outcome",
		}, []string{"outcome"}),
		running: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "job_running",
			Help:      "1 while a search job is running or stopping",
		}),
		jobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "job_duration_seconds",
			Help:      "Wall time from job start to terminal state",
			Buckets:   []float64{0.1, 1, 10, 60, 300, 1800, 3600, 6 * 3600, 24 * 3600},
		}, []string{"outcome"}),
	}
}

// AddAttempts adds newly reported attempts to the running total.
func (m *Metrics) AddAttempts(delta uint64) {
	if m == nil || delta == 0 {
		return
	}
	m.attempts.Add(float64(delta))
}

// JobStarted marks a job as running.
func (m *Metrics) JobStarted() {
	if m == nil {
		return
	}
	m.running.Set(1)
}

// JobFinished records a terminal outcome and the job's wall time.
func (m *Metrics) JobFinished(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.running.Set(0)
	m.jobs.WithLabelValues(outcome).Inc()
	m.jobDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
