package config

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks configuration loading.
//
//   - config_load_timestamp: Unix time of the last successful load
//   - config_fallbacks_total{field}: invalid values replaced by defaults
//   - config_fallback_active: 1 while any fallback from the last load is in effect
type Metrics struct {
	LoadTimestamp  prometheus.Gauge
	FallbacksTotal *prometheus.CounterVec
	FallbackActive prometheus.Gauge
}

// NewMetrics registers the config metrics with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoadTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "config_load_timestamp",
			Help: "Unix timestamp of last configuration load",
		}),
		FallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "config_fallbacks_total",
			Help: "Total number of configuration values replaced by defaults",
		}, []string{"field"}),
		FallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "config_fallback_active",
			Help: "1 if any configuration fallback is active, 0 otherwise",
		}),
	}
}

// RecordLoad records a completed load and the fields that fell back.
func (m *Metrics) RecordLoad(fallbackFields []string) {
	m.LoadTimestamp.SetToCurrentTime()
	for _, f := range fallbackFields {
		m.FallbacksTotal.WithLabelValues(f).Inc()
	}
	if len(fallbackFields) > 0 {
		m.FallbackActive.Set(1)
	} else {
		m.FallbackActive.Set(0)
	}
}

// FallbackFields extracts the env var names from Load warnings.
func FallbackFields(warnings []string) []string {
	fields := make([]string, 0, len(warnings))
	for _, w := range warnings {
		// "Invalid FIELD='value': ..."
		rest, ok := strings.CutPrefix(w, "Invalid ")
		if !ok {
			continue
		}
		if i := strings.IndexByte(rest, '='); i > 0 {
			fields = append(fields, rest[:i])
		}
	}
	return fields
}
