package worker

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-api/internal/domain/entity"
	"campus-api/internal/infra/adapter/persistence/memory"
	"campus-api/internal/observability/metrics"
	"campus-api/internal/observability/slo"
)

/* ───── ヘルパ ───── */

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakePool struct{ stats sql.DBStats }

func (p fakePool) Stats() sql.DBStats { return p.stats }

func fixedCount(n int64) func(context.Context) (int64, error) {
	return func(context.Context) (int64, error) { return n, nil }
}

/* ───── Refresh ───── */

func TestRefresh_PublishesCountsFromRepositories(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepos()
	for _, code := range []string{"DW", "ORT"} {
		_, err := repos.MenuItems.Save(ctx, &entity.MenuItem{DiningCommonsCode: code, Name: "Tofu", Station: "Grill"})
		require.NoError(t, err)
	}
	_, err := repos.Organizations.Save(ctx, &entity.Organization{OrgCode: "ZPR", OrgTranslationShort: "ZETA PHI RHO"})
	require.NoError(t, err)

	r := NewRefresher(repos.Counters(), nil, discardLogger())
	require.NoError(t, r.Refresh(ctx))

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.RecordsTotal.WithLabelValues(entity.MenuItemName)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RecordsTotal.WithLabelValues(entity.OrganizationName)))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.RecordsTotal.WithLabelValues(entity.ArticleName)))
}

func TestRefresh_FailingCounterDoesNotStopOthers(t *testing.T) {
	boom := errors.New("connection refused")
	counters := map[string]func(context.Context) (int64, error){
		"Broken": func(context.Context) (int64, error) { return 0, boom },
		"Fine":   fixedCount(5),
	}

	err := NewRefresher(counters, nil, discardLogger()).Refresh(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "count Broken")
	assert.Equal(t, float64(5), testutil.ToFloat64(metrics.RecordsTotal.WithLabelValues("Fine")))
}

func TestRefresh_PoolStats(t *testing.T) {
	pool := fakePool{stats: sql.DBStats{InUse: 3, Idle: 4}}

	require.NoError(t, NewRefresher(nil, pool, discardLogger()).Refresh(context.Background()))

	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.DBConnectionsActive))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.DBConnectionsIdle))
}

func TestRefresh_HonoursTimeout(t *testing.T) {
	counters := map[string]func(context.Context) (int64, error){
		"Slow": func(ctx context.Context) (int64, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		},
	}
	r := NewRefresher(counters, nil, discardLogger())
	r.timeout = 20 * time.Millisecond

	err := r.Refresh(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

/* ───── Start ───── */

func TestStart_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	before := testutil.ToFloat64(refreshRunsTotal.WithLabelValues(statusSuccess))
	counters := map[string]func(context.Context) (int64, error){"Startup": fixedCount(9)}

	ctx, cancel := context.WithCancel(context.Background())
	done, err := NewRefresher(counters, nil, discardLogger()).Start(ctx, "*/5 * * * *")
	require.NoError(t, err)

	assert.Equal(t, float64(9), testutil.ToFloat64(metrics.RecordsTotal.WithLabelValues("Startup")))
	assert.Equal(t, before+1, testutil.ToFloat64(refreshRunsTotal.WithLabelValues(statusSuccess)))

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestStart_RecordsFailure(t *testing.T) {
	before := testutil.ToFloat64(refreshRunsTotal.WithLabelValues(statusFailure))
	counters := map[string]func(context.Context) (int64, error){
		"Broken": func(context.Context) (int64, error) { return 0, errors.New("boom") },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := NewRefresher(counters, nil, discardLogger()).Start(ctx, "@every 1h")
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(refreshRunsTotal.WithLabelValues(statusFailure)))
}

func TestStart_InvalidSchedule(t *testing.T) {
	_, err := NewRefresher(nil, nil, discardLogger()).Start(context.Background(), "not a schedule")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule record refresh")
}

func TestRefresh_WithSLO(t *testing.T) {
	reg := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "http_requests_total", Help: "h"},
		[]string{"method", "route", "status"})
	reg.MustRegister(requests)
	requests.WithLabelValues("GET", "/api/articles/all", "200").Add(9)
	requests.WithLabelValues("GET", "/api/articles/all", "500").Add(1)

	r := NewRefresher(nil, nil, discardLogger()).WithSLO(reg)
	require.NoError(t, r.Refresh(context.Background()))

	assert.InDelta(t, 0.9, testutil.ToFloat64(slo.SLOAvailability), 1e-9)
}
