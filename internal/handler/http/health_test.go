package http

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-api/internal/resilience/circuitbreaker"
	"campus-api/internal/usecase/events"
)

/* ───── ヘルパ ───── */

func newPingMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func serveHealth(t *testing.T, h http.Handler) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

/* ───── HealthHandler ───── */

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedStatus int
		expectHealthy  bool
	}{
		{
			name:           "healthy database",
			setupMock:      func(mock sqlmock.Sqlmock) { mock.ExpectPing() },
			expectedStatus: http.StatusOK,
			expectHealthy:  true,
		},
		{
			name: "database connection error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(sql.ErrConnDone)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectHealthy:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newPingMock(t)
			db.SetMaxOpenConns(10)
			tt.setupMock(mock)

			code, resp := serveHealth(t, &HealthHandler{DB: db, Version: "test-version", Storage: "postgres"})

			assert.Equal(t, tt.expectedStatus, code)
			if tt.expectHealthy {
				assert.Equal(t, "healthy", resp.Status)
			} else {
				assert.Equal(t, "unhealthy", resp.Status)
			}
			assert.Equal(t, "test-version", resp.Version)
			assert.Equal(t, "postgres", resp.Storage)
			assert.NotEmpty(t, resp.Timestamp)
			assert.Contains(t, resp.Checks, "database")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_NoDatabaseConfigured(t *testing.T) {
	code, resp := serveHealth(t, &HealthHandler{Version: "test-version", Storage: "postgres"})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "not configured", resp.Checks["database"].Message)
}

func TestHealthHandler_MemoryStorage(t *testing.T) {
	code, resp := serveHealth(t, &HealthHandler{Version: "dev", Storage: StorageMemory})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "in-memory storage", resp.Checks["database"].Message)
}

func TestHealthHandler_PoolUtilization(t *testing.T) {
	tests := []struct {
		name            string
		maxOpen         int
		wantStatus      string
		wantUtilization bool
	}{
		{"unlimited pool is degraded", 0, "degraded", false},
		{"single connection pool", 1, "healthy", true},
		{"regular pool", 10, "healthy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newPingMock(t)
			db.SetMaxOpenConns(tt.maxOpen)
			mock.ExpectPing()

			code, resp := serveHealth(t, &HealthHandler{DB: db, Storage: "postgres"})

			// degraded is still operational
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "healthy", resp.Status)

			dbCheck := resp.Checks["database"]
			assert.Equal(t, tt.wantStatus, dbCheck.Status)
			assert.Equal(t, float64(tt.maxOpen), dbCheck.Details["max_open_connections"])
			_, hasUtilization := dbCheck.Details["utilization_percent"]
			assert.Equal(t, tt.wantUtilization, hasUtilization)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_ThroughCircuitBreaker(t *testing.T) {
	db, mock := newPingMock(t)
	db.SetMaxOpenConns(5)
	mock.ExpectPing()

	code, resp := serveHealth(t, &HealthHandler{DB: circuitbreaker.NewDBCircuitBreaker(db), Storage: "sqlite"})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Checks["database"].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler_EventSinks(t *testing.T) {
	tests := []struct {
		name       string
		sinks      []events.SinkStatus
		wantStatus string
	}{
		{"all closed", []events.SinkStatus{{Name: "kafka"}}, "healthy"},
		{"one open", []events.SinkStatus{{Name: "kafka", CircuitOpen: true}, {Name: "log"}}, "degraded"},
		{"no sinks", nil, "healthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{
				Storage: StorageMemory,
				Sinks:   func() []events.SinkStatus { return tt.sinks },
			}

			code, resp := serveHealth(t, h)

			// sinks never fail the check
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.wantStatus, resp.Checks["events"].Status)
		})
	}
}

func TestHealthHandler_Headers(t *testing.T) {
	rec := httptest.NewRecorder()
	(&HealthHandler{Storage: StorageMemory}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

/* ───── Ready / Live ───── */

func TestReadyHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "ready",
			setupMock:      func(mock sqlmock.Sqlmock) { mock.ExpectPing() },
			expectedStatus: http.StatusOK,
			expectedBody:   "ready",
		},
		{
			name: "database not ready",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(sql.ErrConnDone)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newPingMock(t)
			tt.setupMock(mock)

			rec := httptest.NewRecorder()
			(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, rec.Body.String())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReadyHandler_NoDatabase(t *testing.T) {
	t.Run("sql storage without pool", func(t *testing.T) {
		rec := httptest.NewRecorder()
		(&ReadyHandler{Storage: "postgres"}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "database not configured")
	})

	t.Run("memory storage", func(t *testing.T) {
		rec := httptest.NewRecorder()
		(&ReadyHandler{Storage: StorageMemory}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", rec.Body.String())
	})
}

// slowDB blocks Ping until the check deadline expires.
type slowDB struct{}

func (slowDB) PingContext(ctx context.Context) error {
	<-ctx.Done()
	return errors.New("ping: " + ctx.Err().Error())
}

func (slowDB) Stats() sql.DBStats { return sql.DBStats{} }

func TestReadyHandler_Timeout(t *testing.T) {
	start := time.Now()
	rec := httptest.NewRecorder()
	(&ReadyHandler{DB: slowDB{}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

/* ───── SystemInfo ───── */

func TestSystemInfoHandler(t *testing.T) {
	h := &SystemInfoHandler{Info: SystemInfo{Version: "1.2.3", Storage: "sqlite", SwaggerEnabled: true}}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/systemInfo", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"1.2.3","storage":"sqlite","swaggerEnabled":true}`, rec.Body.String())
}
