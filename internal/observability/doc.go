// Package observability groups the service's telemetry.
//
// Subpackages:
//   - logging: slog loggers with request ID propagation
//   - metrics: Prometheus HTTP, CRUD and record-count metrics
//   - slo: availability and latency objectives computed from those metrics
//   - tracing: OpenTelemetry tracer setup and HTTP middleware
package observability
