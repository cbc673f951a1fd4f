package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Refresh job metrics. The record gauges themselves live in
// observability/metrics; these track the job that feeds them.
var (
	refreshRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "records_refresh_runs_total",
		Help: "Total number of record-count refresh runs by status (success/failure)",
	}, []string{"status"})

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "records_refresh_duration_seconds",
		Help:    "Duration of record-count refresh runs in seconds",
		Buckets: []float64{.01, .05, .1, .5, 1, 5, 30},
	})

	refreshLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "records_refresh_last_success_timestamp",
		Help: "Unix timestamp of the last successful record-count refresh",
	})
)

func recordRun(status string, seconds float64) {
	refreshRunsTotal.WithLabelValues(status).Inc()
	refreshDuration.Observe(seconds)
	if status == statusSuccess {
		refreshLastSuccess.SetToCurrentTime()
	}
}
