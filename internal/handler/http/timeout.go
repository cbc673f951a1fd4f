package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"campus-api/internal/handler/http/respond"
	"campus-api/internal/observability/logging"
)

// Timeout returns middleware that answers 504 when a request runs longer
// than duration. The request context is cancelled so repository calls
// stop early.
//
// The handler writes into its own header map and body buffer. They are
// copied to the client only when the handler finishes before the deadline,
// so the handler goroutine never touches w.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &timeoutWriter{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer close(done)
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
			}()

			select {
			case <-done:
				select {
				case p := <-panicked:
					panic(p)
				default:
				}
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.flushTo(w)
			case <-ctx.Done():
				tw.mu.Lock()
				tw.timedOut = true
				tw.mu.Unlock()
				respond.JSON(w, http.StatusGatewayTimeout, map[string]string{"error": "request timeout"})
				logging.WithRequestID(ctx, slog.Default()).Warn("request timed out",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Duration("timeout", duration))
			}
		})
	}
}

// timeoutWriter buffers a handler's response until Timeout decides whether
// it may be sent.
type timeoutWriter struct {
	mu          sync.Mutex
	header      http.Header
	buf         bytes.Buffer
	code        int
	wroteHeader bool
	timedOut    bool
}

// Header returns the handler's private header map. Only the handler
// goroutine touches it until the handler returns.
func (tw *timeoutWriter) Header() http.Header { return tw.header }

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.code = code
}

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.code = http.StatusOK
	}
	return tw.buf.Write(p)
}

// flushTo copies the buffered response to w. Callers hold mu.
func (tw *timeoutWriter) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, vv := range tw.header {
		dst[k] = vv
	}
	if !tw.wroteHeader {
		// Handler wrote nothing: leave the implicit 200 to net/http.
		if tw.buf.Len() == 0 && len(tw.header) == 0 {
			return
		}
		tw.code = http.StatusOK
	}
	w.WriteHeader(tw.code)
	_, _ = w.Write(tw.buf.Bytes())
}
