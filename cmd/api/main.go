package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"campus-api/internal/config"
	hhttp "campus-api/internal/handler/http"
	"campus-api/internal/handler/http/auth"
	"campus-api/internal/infra/adapter/persistence/memory"
	"campus-api/internal/infra/adapter/persistence/postgres"
	"campus-api/internal/infra/adapter/persistence/sqlite"
	"campus-api/internal/infra/db"
	"campus-api/internal/infra/notifier"
	"campus-api/internal/infra/worker"
	"campus-api/internal/observability/logging"
	"campus-api/internal/observability/tracing"
	"campus-api/internal/repository"
	"campus-api/internal/resilience/circuitbreaker"
	ucrud "campus-api/internal/usecase/crud"
	"campus-api/internal/usecase/events"
)

// @title           Campus API
// @version         1.0
// @description     CRUD REST API for campus records: help requests, dining commons menu items,
// @description     recommendation requests, student organizations, articles and menu item reviews.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token. Send "Bearer {token}".

const eventWorkers = 8

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg := loadConfig(logger)
	logger = logging.New(os.Stdout, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, shutdownTracer := tracing.InitTracer(cfg.TraceSampleRatio)

	policy, err := loadPolicy(cfg)
	if err != nil {
		logger.Error("failed to load access policy", slog.Any("error", err))
		os.Exit(1)
	}

	store, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to open storage", slog.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}
	defer store.Close(logger)

	sinks := newEventSinks(logger, cfg.Kafka)
	dispatcher := events.NewDispatcher(sinks, eventWorkers)

	limiter, err := newRateLimiter(logger, cfg.RateLimit)
	if err != nil {
		logger.Error("failed to configure rate limiting", slog.Any("error", err))
		os.Exit(1)
	}

	health := &hhttp.HealthHandler{Version: cfg.Version, Storage: cfg.Storage.Driver, Sinks: dispatcher.SinkHealth}
	ready := &hhttp.ReadyHandler{Storage: cfg.Storage.Driver}
	if store.db != nil {
		health.DB = store.db
		ready.DB = store.db
	}

	mux := newRouter(routeDeps{
		Services: ucrud.NewServices(store.repos, dispatcher),
		Policy:   policy,
		Health:   health,
		Ready:    ready,
		Info: hhttp.SystemInfo{
			Version:        cfg.Version,
			Storage:        cfg.Storage.Driver,
			SwaggerEnabled: cfg.SwaggerEnabled,
		},
	})
	handler := applyMiddleware(logger, cfg, limiter, mux)

	// Background jobs
	if limiter != nil {
		go limiter.StartCleanup(ctx, rateLimitCleanupInterval)
	}
	var pool worker.PoolStats
	if store.db != nil {
		pool = store.db
	}
	refresherDone, err := worker.NewRefresher(store.repos.Counters(), pool, logger).
		WithSLO(prometheus.DefaultGatherer).
		Start(ctx, cfg.MetricsRefreshSchedule)
	if err != nil {
		logger.Error("failed to start record count refresher", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(ctx, logger, cfg, handler)
	stop()

	// Shutdown: HTTP server first, then background publishers.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Error("event dispatcher shutdown failed", slog.Any("error", err))
	}
	for _, s := range sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				logger.Error("failed to close event sink", slog.String("sink", s.Name()), slog.Any("error", err))
			}
		}
	}
	select {
	case <-refresherDone:
	case <-shutdownCtx.Done():
		logger.Warn("record count refresher did not stop in time")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("tracer shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

// loadConfig reads the environment and exits on invalid required settings.
func loadConfig(logger *slog.Logger) *config.AppConfig {
	cfg, warnings, err := config.Load()
	for _, w := range warnings {
		logger.Warn("configuration fallback", slog.String("detail", w))
	}
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	config.NewMetrics(prometheus.DefaultRegisterer).RecordLoad(config.FallbackFields(warnings))

	logger.Info("configuration loaded",
		slog.String("storage", cfg.Storage.Driver),
		slog.String("http_addr", cfg.HTTPAddr),
		slog.String("version", cfg.Version),
		slog.Bool("swagger_enabled", cfg.SwaggerEnabled),
		slog.Bool("kafka_enabled", cfg.Kafka.Enabled()),
		slog.String("metrics_refresh_schedule", cfg.MetricsRefreshSchedule))
	return cfg
}

// loadPolicy applies the optional YAML overrides to the default policy.
func loadPolicy(cfg *config.AppConfig) (auth.Policy, error) {
	policy := auth.DefaultPolicy()
	if cfg.ConfigFile == "" {
		return policy, nil
	}
	fc, err := config.LoadFile(cfg.ConfigFile)
	if err != nil {
		return auth.Policy{}, err
	}
	return policy.Apply(fc.Access)
}

// storage is the opened repository backend.
type storage struct {
	repos repository.Set
	// db is nil for memory storage.
	db *circuitbreaker.DBCircuitBreaker
}

// openStorage builds the repository set for the configured driver.
// SQL drivers are migrated and guarded by a circuit breaker.
func openStorage(ctx context.Context, cfg config.StorageConfig) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		slog.Warn("using in-memory storage: records are lost on restart")
		return &storage{repos: memory.NewRepos()}, nil
	}

	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(database, cfg.Driver); err != nil {
		_ = database.Close()
		return nil, err
	}

	breaker := circuitbreaker.NewDBCircuitBreaker(database)
	s := &storage{db: breaker}
	switch cfg.Driver {
	case config.DriverSQLite:
		s.repos = sqlite.NewRepos(breaker)
	default:
		s.repos = postgres.NewRepos(breaker)
	}
	return s, nil
}

// Close closes the database pool if there is one.
func (s *storage) Close(logger *slog.Logger) {
	if s.db == nil {
		return
	}
	if err := s.db.DB().Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}

// newEventSinks returns the Kafka sink when brokers are configured and a
// debug-level log sink otherwise.
func newEventSinks(logger *slog.Logger, cfg config.KafkaConfig) []events.Sink {
	if !cfg.Enabled() {
		return []events.Sink{notifier.NewLogSink(logger, slog.LevelDebug)}
	}
	logger.Info("kafka change events enabled",
		slog.Int("brokers", len(cfg.Brokers)),
		slog.String("topic", cfg.Topic))
	return []events.Sink{notifier.NewKafkaSink(kafkaSinkConfig(cfg))}
}

func kafkaSinkConfig(cfg config.KafkaConfig) notifier.KafkaConfig {
	return notifier.KafkaConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		WriteTimeout: cfg.WriteTimeout,
		MaxPerSecond: cfg.MaxPerSecond,
		Burst:        cfg.Burst,
	}
}

// runServer serves until ctx is cancelled, then drains connections.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig, handler http.Handler) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server...")
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
}
