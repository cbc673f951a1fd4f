// Package retry provides retry logic with exponential backoff and jitter.
// It is used for the startup database ping and for change-event publishing.
package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// attemptsTotal counts every call of the retried function by operation and
// outcome (success, retry, gave_up, aborted).
var attemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "retry_attempts_total",
		Help: "Attempts made by retried operations",
	},
	[]string{"operation", "outcome"},
)

// Config holds the configuration for retry logic.
type Config struct {
	// Name identifies the operation in logs and metrics.
	Name string

	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// Multiplier is the exponential backoff factor.
	Multiplier float64

	// JitterFraction is the fraction of delay added as random jitter (0.0 to 1.0).
	JitterFraction float64
}

// DBConfig is tuned for the startup ping: the database container is often
// still booting when the API starts, so it waits up to roughly half a minute.
func DBConfig() Config {
	return Config{
		Name:           "db_ping",
		MaxAttempts:    6,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       8 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// EventPublishConfig is tuned for broker writes issued off the request path.
func EventPublishConfig() Config {
	return Config{
		Name:           "event_publish",
		MaxAttempts:    3,
		InitialDelay:   200 * time.Millisecond,
		MaxDelay:       2 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.2,
	}
}

// WithBackoff calls fn until it succeeds, returns a non-retryable error,
// ctx is done, or MaxAttempts is reached.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	name := cfg.Name
	if name == "" {
		name = "unnamed"
	}
	log := slog.Default().With(slog.String("operation", name))

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			attemptsTotal.WithLabelValues(name, "success").Inc()
			if attempt > 1 {
				log.Info("operation succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(lastErr) {
			attemptsTotal.WithLabelValues(name, "aborted").Inc()
			log.Warn("non-retryable error, aborting",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}

		if attempt == cfg.MaxAttempts {
			attemptsTotal.WithLabelValues(name, "gave_up").Inc()
			break
		}
		attemptsTotal.WithLabelValues(name, "retry").Inc()

		log.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s retry aborted: %w", name, ctx.Err())
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		delay = addJitter(delay, cfg.JitterFraction)
	}

	return fmt.Errorf("%s: max retry attempts (%d) exceeded: %w", name, cfg.MaxAttempts, lastErr)
}

// temporary is implemented by kafka-go's Error and by some net errors.
type temporary interface {
	Temporary() bool
}

// IsRetryable reports whether err is a transient connection-level failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var tmp temporary
	if errors.As(err, &tmp) && tmp.Temporary() {
		return true
	}

	return false
}

// addJitter adds up to jitterFraction*duration of random delay.
func addJitter(duration time.Duration, jitterFraction float64) time.Duration {
	if jitterFraction <= 0 {
		return duration
	}
	if jitterFraction > 1.0 {
		jitterFraction = 1.0
	}
	// #nosec G404 -- jitter does not need cryptographic randomness
	jitter := time.Duration(rand.Float64() * float64(duration) * jitterFraction)
	return duration + jitter
}
