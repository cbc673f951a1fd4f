package events

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_dispatched_total",
			Help: "Total number of change events dispatched to a sink",
		},
		[]string{"sink"},
	)

	eventsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_sent_total",
			Help: "Total number of change events sent, by result",
		},
		[]string{"sink", "status"}, // status: success|failure
	)

	eventsSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "events_send_duration_seconds",
			Help:    "Change event send duration in seconds, retries included",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"sink"},
	)

	eventsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_dropped_total",
			Help: "Total number of change events dropped before sending",
		},
		[]string{"sink", "reason"}, // reason: pool_full|shutdown
	)

	eventsActiveGoroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "events_active_goroutines",
			Help: "Number of goroutines currently delivering change events",
		},
	)
)

func recordDispatch(sink string) {
	eventsDispatchedTotal.WithLabelValues(sink).Inc()
}

func recordSuccess(sink string, d time.Duration) {
	eventsSentTotal.WithLabelValues(sink, "success").Inc()
	eventsSendDuration.WithLabelValues(sink).Observe(d.Seconds())
}

func recordFailure(sink string, d time.Duration) {
	eventsSentTotal.WithLabelValues(sink, "failure").Inc()
	eventsSendDuration.WithLabelValues(sink).Observe(d.Seconds())
}

func recordDropped(sink, reason string) {
	eventsDroppedTotal.WithLabelValues(sink, reason).Inc()
}
