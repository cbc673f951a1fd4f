// Package metrics provides the Prometheus metrics registry and recording utilities.
//
// This package centralizes the application metrics:
//   - HTTP request metrics (duration, count, size, in-flight)
//   - CRUD operation metrics per entity and operation
//   - Record-count gauges refreshed by the background job
//   - Database query and connection pool metrics
//
// All metrics are registered with the Prometheus default registry and
// exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	rec, err := repo.FindByID(ctx, id)
//	metrics.RecordCRUDOperation("HelpRequest", "get", metrics.ResultOf(err), time.Since(start))
package metrics
