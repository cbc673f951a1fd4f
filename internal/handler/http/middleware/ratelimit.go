package middleware

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"campus-api/internal/handler/http/respond"
)

var errTooManyRequests = errors.New("too many requests")

var rateLimitDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rate_limit_decisions_total",
		Help: "Rate limit decisions by result",
	},
	[]string{"result"}, // result: allowed | limited
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a token bucket per client IP. Buckets idle for longer
// than the idle TTL are dropped by Cleanup.
type RateLimiter struct {
	rps         rate.Limit
	burst       int
	idleTTL     time.Duration
	ipExtractor IPExtractor
	now         func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter creates a limiter allowing rps requests per second per
// client with bursts of burst.
//
// Example:
//
//	limiter := NewRateLimiter(20, 40, RemoteAddrExtractor{})
//	handler = limiter.Middleware(handler)
func NewRateLimiter(rps float64, burst int, ipExtractor IPExtractor) *RateLimiter {
	if ipExtractor == nil {
		ipExtractor = RemoteAddrExtractor{}
	}
	return &RateLimiter{
		rps:         rate.Limit(rps),
		burst:       burst,
		idleTTL:     10 * time.Minute,
		ipExtractor: ipExtractor,
		now:         time.Now,
		visitors:    make(map[string]*visitor),
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := rl.ipExtractor.ExtractIP(r)
		if err != nil {
			slog.Warn("failed to extract client IP, using RemoteAddr",
				slog.String("remote_addr", r.RemoteAddr),
				slog.Any("error", err))
			ip = r.RemoteAddr
		}

		res := rl.reserve(ip)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !res.OK() || res.DelayFrom(rl.now()) > 0 {
			retryAfter := time.Second
			if res.OK() {
				retryAfter = res.DelayFrom(rl.now())
				res.CancelAt(rl.now())
			}
			rateLimitDecisions.WithLabelValues("limited").Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			respond.SafeError(w, http.StatusTooManyRequests, errTooManyRequests)
			return
		}

		rateLimitDecisions.WithLabelValues("allowed").Inc()
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) reserve(ip string) *rate.Reservation {
	now := rl.now()

	rl.mu.Lock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()

	return v.limiter.ReserveN(now, 1)
}

// Cleanup drops buckets that have been idle longer than the idle TTL and
// returns how many were dropped.
func (rl *RateLimiter) Cleanup() int {
	cutoff := rl.now().Add(-rl.idleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// StartCleanup runs Cleanup every interval until ctx is cancelled.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			if n := rl.Cleanup(); n > 0 {
				slog.Debug("rate limit cleanup completed", slog.Int("removed", n))
			}
		}
	}
}
