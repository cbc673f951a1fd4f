// Package requestid tags every request with an ID that is echoed in the
// X-Request-ID response header and attached to log entries and change events.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"campus-api/internal/observability/logging"
)

// Header is the HTTP header carrying the request ID in both directions.
const Header = "X-Request-ID"

// maxLen bounds client-supplied IDs so they cannot bloat logs.
const maxLen = 64

// FromContext returns the request ID stored in ctx, or "".
func FromContext(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return logging.ContextWithRequestID(ctx, id)
}

// Valid reports whether a client-supplied ID may be reused as is.
// Accepted IDs are 1 to 64 characters of [A-Za-z0-9._-].
func Valid(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// Middleware reuses a valid incoming X-Request-ID and otherwise assigns a
// new UUID v4.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !Valid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
