// Package worker runs the background job that keeps the record-count gauges
// and database pool gauges current.
package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"campus-api/internal/observability/logging"
	"campus-api/internal/observability/metrics"
	"campus-api/internal/observability/slo"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"

	defaultTimeout     = 30 * time.Second
	defaultParallelism = 3
)

// Counter returns the number of stored records of one type.
type Counter func(ctx context.Context) (int64, error)

// PoolStats exposes connection pool statistics. Nil for memory storage.
type PoolStats interface {
	Stats() sql.DBStats
}

// Refresher counts every record type and publishes the results as gauges.
type Refresher struct {
	counters    map[string]Counter
	pool        PoolStats
	gatherer    prometheus.Gatherer
	logger      *slog.Logger
	timeout     time.Duration
	parallelism int
}

// NewRefresher builds a Refresher over counters keyed by entity name.
// pool may be nil.
func NewRefresher(counters map[string]func(context.Context) (int64, error), pool PoolStats, logger *slog.Logger) *Refresher {
	cs := make(map[string]Counter, len(counters))
	for name, fn := range counters {
		cs[name] = fn
	}
	return &Refresher{
		counters:    cs,
		pool:        pool,
		logger:      logger,
		timeout:     defaultTimeout,
		parallelism: defaultParallelism,
	}
}

// WithSLO makes every refresh also recompute the SLO gauges from g.
func (r *Refresher) WithSLO(g prometheus.Gatherer) *Refresher {
	r.gatherer = g
	return r
}

// Refresh counts all record types concurrently. A failing counter does not
// stop the others; the first error is returned after all have finished.
func (r *Refresher) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(r.parallelism)

	for name, count := range r.counters {
		g.Go(func() error {
			start := time.Now()
			n, err := count(ctx)
			metrics.RecordDBQuery("count_"+name, time.Since(start))
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			metrics.UpdateRecordsTotal(name, n)
			return nil
		})
	}
	err := g.Wait()

	if r.pool != nil {
		stats := r.pool.Stats()
		metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	}
	if r.gatherer != nil {
		if _, sloErr := slo.Refresh(r.gatherer); sloErr != nil {
			err = errors.Join(err, sloErr)
		}
	}
	return err
}

func (r *Refresher) run(ctx context.Context) {
	start := time.Now()
	if err := r.Refresh(ctx); err != nil {
		// 機密情報をマスクしてログ出力
		r.logger.Error("record count refresh failed", slog.String("error", logging.SanitizeError(err)))
		recordRun(statusFailure, time.Since(start).Seconds())
		return
	}
	recordRun(statusSuccess, time.Since(start).Seconds())
	r.logger.Debug("record counts refreshed",
		slog.Int("entities", len(r.counters)),
		slog.Duration("duration", time.Since(start)))
}

// Start refreshes once, then on schedule (standard five-field cron) until
// ctx is cancelled. The returned channel closes once the scheduler has
// stopped and any running refresh has finished.
func (r *Refresher) Start(ctx context.Context, schedule string) (<-chan struct{}, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { r.run(ctx) }); err != nil {
		return nil, fmt.Errorf("schedule record refresh: %w", err)
	}

	r.run(ctx)
	c.Start()
	r.logger.Info("record count refresher started", slog.String("schedule", schedule))

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		close(done)
	}()
	return done, nil
}
