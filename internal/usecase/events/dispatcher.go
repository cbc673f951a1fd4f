package events

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"campus-api/internal/resilience/circuitbreaker"
	"campus-api/internal/resilience/retry"
)

const (
	workerPoolTimeout = 2 * time.Second
	sendTimeout       = 10 * time.Second
)

type sinkState struct {
	sink    Sink
	breaker *circuitbreaker.CircuitBreaker
}

// SinkStatus reports the breaker state of one sink.
type SinkStatus struct {
	Name        string `json:"name"`
	CircuitOpen bool   `json:"circuitOpen"`
}

// Dispatcher fans events out to its sinks in background goroutines.
// Each sink has its own circuit breaker; sends are retried with
// retry.EventPublishConfig.
type Dispatcher struct {
	sinks          []sinkState
	workerPool     chan struct{}
	retryCfg       retry.Config
	wg             sync.WaitGroup
	mu             sync.RWMutex
	closed         bool
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewDispatcher returns a Dispatcher running at most maxConcurrent sends at once.
func NewDispatcher(sinks []Sink, maxConcurrent int) *Dispatcher {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		workerPool:     make(chan struct{}, maxConcurrent),
		retryCfg:       retry.EventPublishConfig(),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}
	for _, s := range sinks {
		cfg := circuitbreaker.KafkaConfig()
		cfg.Name = "events-" + s.Name()
		d.sinks = append(d.sinks, sinkState{sink: s, breaker: circuitbreaker.New(cfg)})
	}
	return d
}

// Publish hands ev to every sink and returns immediately.
func (d *Dispatcher) Publish(ctx context.Context, ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		for _, s := range d.sinks {
			recordDropped(s.sink.Name(), "shutdown")
		}
		return
	}
	for _, s := range d.sinks {
		d.wg.Add(1)
		go d.deliver(s, ev)
	}
}

func (d *Dispatcher) deliver(s sinkState, ev Event) {
	defer d.wg.Done()

	eventsActiveGoroutines.Inc()
	defer eventsActiveGoroutines.Dec()

	name := s.sink.Name()
	logger := slog.Default().With(
		slog.String("sink", name),
		slog.String("event_id", ev.ID.String()),
		slog.String("entity", ev.Entity),
		slog.String("key", ev.Key),
		slog.String("action", string(ev.Action)),
		slog.String("request_id", ev.RequestID),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in event sink",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	select {
	case d.workerPool <- struct{}{}:
		defer func() { <-d.workerPool }()
	case <-time.After(workerPoolTimeout):
		logger.Warn("event dropped: worker pool full")
		recordDropped(name, "pool_full")
		return
	case <-d.shutdownCtx.Done():
		recordDropped(name, "shutdown")
		return
	}

	ctx, cancel := context.WithTimeout(d.shutdownCtx, sendTimeout)
	defer cancel()

	recordDispatch(name)
	start := time.Now()
	err := retry.WithBackoff(ctx, d.retryCfg, func() error {
		_, err := s.breaker.Execute(func() (interface{}, error) {
			return nil, s.sink.Send(ctx, ev)
		})
		return err
	})
	elapsed := time.Since(start)

	if err != nil {
		recordFailure(name, elapsed)
		logger.Warn("event delivery failed",
			slog.Duration("duration", elapsed),
			slog.Any("error", err))
		return
	}
	recordSuccess(name, elapsed)
	logger.Debug("event delivered", slog.Duration("duration", elapsed))
}

// SinkHealth reports the breaker state of every sink.
func (d *Dispatcher) SinkHealth() []SinkStatus {
	out := make([]SinkStatus, 0, len(d.sinks))
	for _, s := range d.sinks {
		out = append(out, SinkStatus{Name: s.sink.Name(), CircuitOpen: s.breaker.IsOpen()})
	}
	return out
}

// Shutdown stops accepting events and waits for in-flight deliveries until
// ctx is done, then cancels whatever is still running.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	slog.Info("shutting down event dispatcher")

	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.shutdownCancel()
		slog.Info("event dispatcher shutdown complete")
		return nil
	case <-ctx.Done():
		d.shutdownCancel()
		slog.Warn("event dispatcher shutdown timeout")
		return ctx.Err()
	}
}
