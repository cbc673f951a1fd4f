package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"campus-api/internal/observability/logging"
)

/* ───────── ヘルパ ───────── */

// installRecorder swaps the global provider for one exporting to memory.
func installRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	return exp
}

func attrMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	Middleware(h).ServeHTTP(rr, req)
	return rr
}

/* ───────── span 生成 ───────── */

func TestMiddleware_ServerSpan(t *testing.T) {
	exp := installRecorder(t)

	req := httptest.NewRequest(http.MethodGet, "/api/articles/all", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-9"))
	rr := serve(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}), req)

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "GET /api/articles/all", s.Name)
	assert.Equal(t, trace.SpanKindServer, s.SpanKind)

	attrs := attrMap(s.Attributes)
	assert.Equal(t, "GET", attrs["http.request.method"].AsString())
	assert.Equal(t, "/api/articles/all", attrs["url.path"].AsString())
	assert.Equal(t, "/api/articles/all", attrs["http.route"].AsString())
	assert.EqualValues(t, 200, attrs["http.response.status_code"].AsInt64())
	assert.EqualValues(t, 2, attrs["http.response.body.size"].AsInt64())
	assert.Equal(t, "req-9", attrs["request.id"].AsString())
	assert.Equal(t, codes.Unset, s.Status.Code)

	assert.Equal(t, s.SpanContext.TraceID().String(), rr.Header().Get(TraceIDHeader))
}

func TestMiddleware_RouteLabels(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		method   string
		target   string
		wantName string
	}{
		{"mux pattern", "DELETE /api/menuitemreviews", http.MethodDelete, "/api/menuitemreviews?id=3", "DELETE /api/menuitemreviews"},
		{"swagger assets", "GET /swagger/", http.MethodGet, "/swagger/index.html", "GET /swagger/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := installRecorder(t)
			mux := http.NewServeMux()
			mux.HandleFunc(tt.pattern, func(w http.ResponseWriter, _ *http.Request) {})

			serve(mux, httptest.NewRequest(tt.method, tt.target, nil))

			spans := exp.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantName, spans[0].Name)
		})
	}
}

func TestMiddleware_UnknownPathIsUnmatched(t *testing.T) {
	exp := installRecorder(t)
	serve(http.NotFoundHandler(), httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /unmatched", spans[0].Name)
}

/* ───────── ステータス ───────── */

func TestMiddleware_Status(t *testing.T) {
	tests := []struct {
		status   int
		wantCode codes.Code
	}{
		{http.StatusOK, codes.Unset},
		{http.StatusNotFound, codes.Unset},
		{http.StatusForbidden, codes.Unset},
		{http.StatusInternalServerError, codes.Error},
		{http.StatusServiceUnavailable, codes.Error},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			exp := installRecorder(t)
			serve(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}), httptest.NewRequest(http.MethodGet, "/api/helprequest?id=1", nil))

			spans := exp.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantCode, spans[0].Status.Code)
			assert.EqualValues(t, tt.status, attrMap(spans[0].Attributes)["http.response.status_code"].AsInt64())
		})
	}
}

/* ───────── 伝播 ───────── */

func TestMiddleware_ContinuesIncomingTrace(t *testing.T) {
	exp := installRecorder(t)
	const parent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

	req := httptest.NewRequest(http.MethodGet, "/api/articles/all", nil)
	req.Header.Set("traceparent", parent)
	rr := serve(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}), req)

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent.SpanID().String())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rr.Header().Get(TraceIDHeader))
}

func TestMiddleware_ChildSpansShareTrace(t *testing.T) {
	exp := installRecorder(t)

	serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, span := GetTracer().Start(r.Context(), "Article.list")
		span.End()
	}), httptest.NewRequest(http.MethodGet, "/api/articles/all", nil))

	spans := exp.GetSpans()
	require.Len(t, spans, 2)
	child, server := spans[0], spans[1]
	assert.Equal(t, "Article.list", child.Name)
	assert.Equal(t, server.SpanContext.TraceID(), child.SpanContext.TraceID())
	assert.Equal(t, server.SpanContext.SpanID(), child.Parent.SpanID())
}

/* ───────── InitTracer ───────── */

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	tp, shutdown := InitTracer(1.0)
	require.NotNil(t, tp)
	assert.Same(t, tp, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}
