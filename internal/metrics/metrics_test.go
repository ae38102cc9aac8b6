package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				name += "," + lp.GetName() + "=" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[name] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[name] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[name] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestMetricsLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.JobStarted()
	m.AddAttempts(5000)
	m.AddAttempts(0)
	m.AddAttempts(2500)

	got := gather(t, reg)
	assert.Equal(t, 7500.0, got["btcvanity_search_attempts_total"])
	assert.Equal(t, 1.0, got["btcvanity_search_job_running"])

	m.JobFinished("found", 3*time.Second)

	got = gather(t, reg)
	assert.Equal(t, 0.0, got["btcvanity_search_job_running"])
	assert.Equal(t, 1.0, got["btcvanity_search_jobs_total,outcome=found"])
	assert.Equal(t, 1.0, got["btcvanity_search_job_duration_seconds,outcome=found"])
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.JobStarted()
		m.AddAttempts(10)
		m.JobFinished("stopped", time.Second)
	})
}

func TestNewRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
