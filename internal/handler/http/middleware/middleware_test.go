package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-api/pkg/security/csp"
)

/* ───── ヘルパ ───── */

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(remoteAddr string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/articles/all", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

/* ───── IP 抽出 ───── */

func TestRemoteAddrExtractor(t *testing.T) {
	tests := map[string]string{
		"192.168.1.1:54321":  "192.168.1.1",
		"[2001:db8::1]:8080": "2001:db8::1",
		"127.0.0.1":          "127.0.0.1",
		"[::1]":              "::1",
	}
	for addr, want := range tests {
		got, err := RemoteAddrExtractor{}.ExtractIP(requestFrom(addr, nil))
		require.NoError(t, err, addr)
		assert.Equal(t, want, got, addr)
	}

	_, err := RemoteAddrExtractor{}.ExtractIP(requestFrom("not-an-ip", nil))
	assert.Error(t, err)
}

func TestNewIPExtractor(t *testing.T) {
	ext, err := NewIPExtractor(nil)
	require.NoError(t, err)
	assert.IsType(t, RemoteAddrExtractor{}, ext)

	ext, err = NewIPExtractor([]string{"10.0.0.0/8", " 192.168.1.1 ", ""})
	require.NoError(t, err)
	assert.IsType(t, &TrustedProxyExtractor{}, ext)

	_, err = NewIPExtractor([]string{"proxy.local"})
	assert.ErrorContains(t, err, "invalid IP or CIDR format")
}

func TestTrustedProxyExtractor(t *testing.T) {
	ext, err := NewIPExtractor([]string{"10.0.0.0/8", "2001:db8::1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"trusted xff", "10.1.2.3:443", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.1.2.3"}, "203.0.113.9"},
		{"trusted real ip", "10.1.2.3:443", map[string]string{"X-Real-IP": "203.0.113.7"}, "203.0.113.7"},
		{"trusted ipv6 proxy", "[2001:db8::1]:443", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "198.51.100.1"},
		{"trusted bad xff falls back", "10.1.2.3:443", map[string]string{"X-Forwarded-For": "junk"}, "10.1.2.3"},
		{"trusted without headers", "10.1.2.3:443", nil, "10.1.2.3"},
		{"untrusted spoof ignored", "203.0.113.50:1234", map[string]string{"X-Forwarded-For": "1.1.1.1"}, "203.0.113.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ext.ExtractIP(requestFrom(tt.remote, tt.headers))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/* ───── レート制限 ───── */

func TestRateLimiter_LimitsPerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2, RemoteAddrExtractor{})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Middleware(okHandler)

	codes := func(addr string, n int) []int {
		var out []int
		for i := 0; i < n; i++ {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, requestFrom(addr, nil))
			out = append(out, rr.Code)
		}
		return out
	}

	assert.Equal(t, []int{200, 200, 429}, codes("192.0.2.1:1000", 3))
	assert.Equal(t, []int{200}, codes("192.0.2.2:1000", 1), "other clients have their own bucket")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom("192.0.2.1:1000", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
	assert.JSONEq(t, `{"error":"too many requests"}`, rr.Body.String())

	now = now.Add(time.Second)
	assert.Equal(t, []int{200}, codes("192.0.2.1:1000", 1), "token refilled")
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(10, 10, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Middleware(okHandler)

	h.ServeHTTP(httptest.NewRecorder(), requestFrom("192.0.2.1:1", nil))
	now = now.Add(5 * time.Minute)
	h.ServeHTTP(httptest.NewRecorder(), requestFrom("192.0.2.2:1", nil))
	require.Equal(t, 2, rl.Len())

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, rl.Cleanup())
	assert.Equal(t, 1, rl.Len())
}

/* ───── CORS ───── */

func TestCORS(t *testing.T) {
	h := CORS(DefaultCORSConfig([]string{"http://localhost:3000"}))(okHandler)

	t.Run("same origin", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/articles/all", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/articles/all", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/helprequest", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PUT")
		assert.Equal(t, "86400", rr.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/articles/all", nil)
		req.Header.Set("Origin", "https://evil.example")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

/* ───── SecurityHeaders ───── */

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		reportOnly bool
		wantHeader string
		wantPolicy string
	}{
		{"api path gets strict policy", "/api/helprequest/all", false, "Content-Security-Policy", "default-src 'none'"},
		{"swagger gets ui policy", "/swagger/index.html", false, "Content-Security-Policy", "script-src 'self' 'unsafe-inline'"},
		{"report only", "/api/articles", true, "Content-Security-Policy-Report-Only", "default-src 'none'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := SecurityHeaders(DefaultSecurityHeadersConfig(tt.reportOnly))(okHandler)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get(tt.wantHeader), tt.wantPolicy)
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
		})
	}
}

func TestSecurityHeaders_LongestPrefixWins(t *testing.T) {
	cfg := SecurityHeadersConfig{
		Default: csp.New().Set("default-src", "'none'"),
		PathPolicies: map[string]*csp.Policy{
			"/swagger/":      csp.New().Set("default-src", "'self'"),
			"/swagger/docs/": csp.New().Set("default-src", "https:"),
		},
	}
	rec := httptest.NewRecorder()
	SecurityHeaders(cfg)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/docs/x", nil))

	assert.Equal(t, "default-src https:", rec.Header().Get("Content-Security-Policy"))
}
