package http

import (
	"net/http"
	"strconv"
	"time"

	"campus-api/internal/handler/http/pathutil"
	"campus-api/internal/handler/http/responsewriter"
	"campus-api/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsMiddleware records request count, latency, in-flight gauge and
// request/response sizes. The path label is the matched route pattern so
// record keys in the query string never reach label values.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		rw := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(rw, r)

		// the mux fills r.Pattern while serving
		metrics.RecordHTTPRequest(
			r.Method,
			pathutil.RouteLabel(r),
			strconv.Itoa(rw.StatusCode()),
			time.Since(start),
			int(max(r.ContentLength, 0)),
			rw.BytesWritten(),
		)
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
