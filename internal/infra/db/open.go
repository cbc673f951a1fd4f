package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"campus-api/internal/config"
	"campus-api/internal/resilience/retry"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// sqlitePragmas are applied to every SQLite connection.
const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

// DriverName maps a STORAGE_DRIVER value to its database/sql driver name and DSN.
func DriverName(storage config.StorageConfig) (driver, dsn string, err error) {
	switch storage.Driver {
	case config.DriverPostgres:
		return "pgx", storage.DatabaseURL, nil
	case config.DriverSQLite:
		return "sqlite", "file:" + storage.SQLitePath + sqlitePragmas, nil
	default:
		return "", "", fmt.Errorf("no SQL driver for storage %q", storage.Driver)
	}
}

// Open creates and configures a connection pool for the configured storage
// and verifies it with a ping, retrying transient failures with backoff.
func Open(ctx context.Context, storage config.StorageConfig) (*sql.DB, error) {
	driver, dsn, err := DriverName(storage)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	cfg := getConnectionConfigFromEnv()
	if storage.Driver == config.DriverSQLite {
		// SQLite は書き込みが単一ロックのため接続を1本に絞る
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("driver", driver),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	if err := Ping(ctx, db, retry.DBConfig()); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Info("database connection established successfully", slog.String("driver", driver))
	return db, nil
}

// Ping verifies db with retry. Each attempt has its own 5 second timeout.
func Ping(ctx context.Context, db *sql.DB, cfg retry.Config) error {
	err := retry.WithBackoff(ctx, cfg, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// getConnectionConfigFromEnv reads pool settings from DB_* variables.
// Non-positive values keep the defaults.
func getConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()

	if v := config.GetEnvInt("DB_MAX_OPEN_CONNS", 0); v > 0 {
		cfg.MaxOpenConns = v
	}
	if v := config.GetEnvInt("DB_MAX_IDLE_CONNS", 0); v > 0 {
		cfg.MaxIdleConns = v
	}
	if v := config.GetEnvDuration("DB_CONN_MAX_LIFETIME", 0); v > 0 {
		cfg.ConnMaxLifetime = v
	}
	if v := config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", 0); v > 0 {
		cfg.ConnMaxIdleTime = v
	}

	return cfg
}
