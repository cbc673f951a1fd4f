package slo

import (
	"fmt"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	requestsMetric = "http_requests_total"
	durationMetric = "http_request_duration_seconds"
)

// Report holds the indicators computed from one gather.
type Report struct {
	Requests     float64
	ServerErrors float64
	Availability float64
	ErrorRate    float64
	LatencyP95   float64
	LatencyP99   float64
}

// MeetsTargets reports whether every indicator is within its target.
func (r Report) MeetsTargets() bool {
	return r.Availability*100 >= AvailabilitySLO &&
		r.ErrorRate <= ErrorRateSLO &&
		r.LatencyP95 <= LatencyP95SLO &&
		r.LatencyP99 <= LatencyP99SLO
}

// Compute derives the indicators from gathered metric families.
// With no requests yet the service counts as fully available.
func Compute(families []*dto.MetricFamily) Report {
	r := Report{Availability: 1}
	buckets := map[float64]float64{}
	var observed float64

	for _, mf := range families {
		switch mf.GetName() {
		case requestsMetric:
			for _, m := range mf.GetMetric() {
				v := m.GetCounter().GetValue()
				r.Requests += v
				if strings.HasPrefix(label(m, "status"), "5") {
					r.ServerErrors += v
				}
			}
		case durationMetric:
			for _, m := range mf.GetMetric() {
				h := m.GetHistogram()
				observed += float64(h.GetSampleCount())
				for _, b := range h.GetBucket() {
					buckets[b.GetUpperBound()] += float64(b.GetCumulativeCount())
				}
			}
		}
	}

	if r.Requests > 0 {
		r.ErrorRate = r.ServerErrors / r.Requests
		r.Availability = 1 - r.ErrorRate
	}
	r.LatencyP95 = quantile(0.95, buckets, observed)
	r.LatencyP99 = quantile(0.99, buckets, observed)
	return r
}

// Refresh gathers from g, computes a Report and publishes it.
func Refresh(g prometheus.Gatherer) (Report, error) {
	families, err := g.Gather()
	if err != nil {
		return Report{}, fmt.Errorf("gather metrics: %w", err)
	}
	r := Compute(families)
	Publish(r)
	return r, nil
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// quantile estimates q by linear interpolation inside the bucket holding
// the target rank, like histogram_quantile. Ranks past the last finite
// bucket return that bucket's upper bound.
func quantile(q float64, buckets map[float64]float64, total float64) float64 {
	if total == 0 || len(buckets) == 0 {
		return 0
	}
	bounds := make([]float64, 0, len(buckets))
	for b := range buckets {
		bounds = append(bounds, b)
	}
	slices.Sort(bounds)

	rank := q * total
	var prevBound, prevCount float64
	for _, b := range bounds {
		c := buckets[b]
		if c >= rank {
			if c == prevCount {
				return b
			}
			return prevBound + (b-prevBound)*(rank-prevCount)/(c-prevCount)
		}
		prevBound, prevCount = b, c
	}
	return prevBound
}
