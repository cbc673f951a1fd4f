// Package http provides the HTTP surface of the campus API: the middleware
// chain, health and readiness checks, system info and the metrics endpoint.
// Record routes live in the crud and resource subpackages.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"campus-api/internal/handler/http/respond"
	"campus-api/internal/usecase/events"
)

// StorageMemory names the in-process storage driver, which has no database.
const StorageMemory = "memory"

// Database is the part of the connection pool the health checks need.
// *sql.DB and circuitbreaker.DBCircuitBreaker both satisfy it.
type Database interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Storage   string                 `json:"storage"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler handles health check endpoint requests.
// It performs database connectivity checks and returns detailed health status.
// Event sinks are reported but never fail the check.
type HealthHandler struct {
	DB      Database
	Version string
	Storage string
	Sinks   func() []events.SinkStatus
}

// ServeHTTP returns 200 OK if healthy, or 503 Service Unavailable if any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	// データベース接続チェック
	switch {
	case h.DB != nil:
		dbCheck := h.checkDatabase(ctx)
		checks["database"] = dbCheck
		if dbCheck.Status == "unhealthy" {
			allHealthy = false
		}
	case h.Storage == StorageMemory:
		checks["database"] = CheckStatus{Status: "healthy", Message: "in-memory storage"}
	default:
		checks["database"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		allHealthy = false
	}

	// イベント送信先チェック
	if h.Sinks != nil {
		checks["events"] = checkSinks(h.Sinks())
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Storage:   h.Storage,
		Checks:    checks,
		Version:   h.Version,
	})
}

// checkDatabase checks database connectivity and returns connection pool statistics.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	// MaxOpenConnections 0 means unlimited
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilizationPercent := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilizationPercent

	if utilizationPercent >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}

	return CheckStatus{
		Status:  "healthy",
		Details: details,
	}
}

// checkSinks reports an open sink breaker as degraded. Events are best
// effort, so record requests keep being served either way.
func checkSinks(sinks []events.SinkStatus) CheckStatus {
	open := 0
	for _, s := range sinks {
		if s.CircuitOpen {
			open++
		}
	}
	check := CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"sinks": sinks},
	}
	if open > 0 {
		check.Status = "degraded"
		check.Message = "event sink circuit open"
	}
	return check
}

// ReadyHandler handles Kubernetes readiness check requests.
// It checks if the database connection is established and ready to accept traffic.
type ReadyHandler struct {
	DB      Database
	Storage string
}

// ServeHTTP returns 200 OK if ready, or 503 Service Unavailable if the
// database is not ready.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		if h.Storage == StorageMemory {
			writeText(w, "ready")
			return
		}
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeText(w, "ready")
}

// LiveHandler handles Kubernetes liveness check requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeText(w, "alive")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
