package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-api/internal/config"
	"campus-api/internal/resilience/retry"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestGetConnectionConfigFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg ConnectionConfig)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg ConnectionConfig) {
				assert.Equal(t, DefaultConnectionConfig(), cfg)
			},
		},
		{
			name: "valid overrides",
			env: map[string]string{
				"DB_MAX_OPEN_CONNS":     "50",
				"DB_MAX_IDLE_CONNS":     "5",
				"DB_CONN_MAX_LIFETIME":  "2h",
				"DB_CONN_MAX_IDLE_TIME": "1m",
			},
			check: func(t *testing.T, cfg ConnectionConfig) {
				assert.Equal(t, 50, cfg.MaxOpenConns)
				assert.Equal(t, 5, cfg.MaxIdleConns)
				assert.Equal(t, 2*time.Hour, cfg.ConnMaxLifetime)
				assert.Equal(t, time.Minute, cfg.ConnMaxIdleTime)
			},
		},
		{
			name: "invalid values keep defaults",
			env: map[string]string{
				"DB_MAX_OPEN_CONNS":    "invalid",
				"DB_MAX_IDLE_CONNS":    "-10",
				"DB_CONN_MAX_LIFETIME": "0s",
			},
			check: func(t *testing.T, cfg ConnectionConfig) {
				assert.Equal(t, DefaultConnectionConfig(), cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, getConnectionConfigFromEnv())
		})
	}
}

func TestDriverName(t *testing.T) {
	driver, dsn, err := DriverName(config.StorageConfig{Driver: config.DriverPostgres, DatabaseURL: "postgres://u:p@h/db"})
	require.NoError(t, err)
	assert.Equal(t, "pgx", driver)
	assert.Equal(t, "postgres://u:p@h/db", dsn)

	driver, dsn, err = DriverName(config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: "campus.db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", driver)
	assert.Contains(t, dsn, "file:campus.db?")
	assert.Contains(t, dsn, "busy_timeout")

	_, _, err = DriverName(config.StorageConfig{Driver: config.DriverMemory})
	assert.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campus.db")

	database, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	assert.Equal(t, 1, database.Stats().MaxOpenConnections)
	require.NoError(t, MigrateUp(database, config.DriverSQLite))

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM help_requests`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestPing_ReturnsWrappedError(t *testing.T) {
	database, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	mock.ExpectPing().WillReturnError(sql.ErrConnDone)

	cfg := retry.Config{MaxAttempts: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
	err = Ping(context.Background(), database, cfg)
	assert.ErrorContains(t, err, "failed to ping database")
	assert.NoError(t, mock.ExpectationsWereMet())
}
