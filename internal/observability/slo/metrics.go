// Package slo publishes service level indicators derived from the HTTP
// request metrics, next to their targets.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets define the service level objectives for the application.
const (
	// AvailabilitySLO defines the target uptime percentage (99.9% = 43 minutes downtime per month)
	AvailabilitySLO = 99.9

	// LatencyP95SLO defines the target for 95th percentile latency in seconds (200ms)
	LatencyP95SLO = 0.200

	// LatencyP99SLO defines the target for 99th percentile latency in seconds (500ms)
	LatencyP99SLO = 0.500

	// ErrorRateSLO defines the maximum acceptable error rate as a ratio (0.1% = 0.001)
	ErrorRateSLO = 0.001
)

// SLO gauges, refreshed by Refresh from the process-lifetime HTTP metrics.
var (
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Current availability ratio (0-1), target: 0.999",
		},
	)

	SLOLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p95_seconds",
			Help: "Current p95 latency in seconds, target: 0.200",
		},
	)

	SLOLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p99_seconds",
			Help: "Current p99 latency in seconds, target: 0.500",
		},
	)

	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Current error rate ratio (0-1), target: 0.001",
		},
	)
)

// Publish sets every SLO gauge from r.
func Publish(r Report) {
	SLOAvailability.Set(r.Availability)
	SLOErrorRate.Set(r.ErrorRate)
	SLOLatencyP95.Set(r.LatencyP95)
	SLOLatencyP99.Set(r.LatencyP99)
}
