package metrics

import (
	"errors"
	"time"

	"campus-api/internal/domain/entity"
)

// Operation results used as the "result" label.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// ResultOf maps an operation error onto a result label.
func ResultOf(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, entity.ErrNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}

// RecordCRUDOperation records one service operation.
func RecordCRUDOperation(entityName, operation, result string, duration time.Duration) {
	CRUDOperationsTotal.WithLabelValues(entityName, operation, result).Inc()
	CRUDOperationDuration.WithLabelValues(entityName, operation).Observe(duration.Seconds())
}

// UpdateRecordsTotal sets the stored record count for an entity.
func UpdateRecordsTotal(entityName string, count int64) {
	RecordsTotal.WithLabelValues(entityName).Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "count_help_requests").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
