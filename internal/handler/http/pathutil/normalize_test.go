package pathutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "list route", path: "/api/articles/all", expected: "/api/articles/all"},
		{name: "create route", path: "/api/helprequest/post", expected: "/api/helprequest/post"},
		{name: "keyed route with query", path: "/api/helprequest?id=7", expected: "/api/helprequest"},
		{name: "keyed route trailing slash", path: "/api/ucsborganization/", expected: "/api/ucsborganization"},
		{name: "current user", path: "/api/currentUser", expected: "/api/currentUser"},
		{name: "system info", path: "/api/systemInfo", expected: "/api/systemInfo"},
		{name: "health", path: "/health", expected: "/health"},
		{name: "metrics", path: "/metrics", expected: "/metrics"},
		{name: "swagger asset", path: "/swagger/swagger-ui.css", expected: "/swagger/*"},
		{name: "swagger root", path: "/swagger/", expected: "/swagger/*"},
		{name: "numeric segment", path: "/api/articles/123", expected: Unmatched},
		{name: "scanner path", path: "/wp-login.php", expected: Unmatched},
		{name: "root", path: "/", expected: Unmatched},
		{name: "empty", path: "", expected: Unmatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestRouteLabel(t *testing.T) {
	mux := http.NewServeMux()
	var label string
	mux.HandleFunc("GET /api/articles/all", func(w http.ResponseWriter, r *http.Request) {})

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		label = RouteLabel(r)
	})

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/articles/all", nil))
	if label != "/api/articles/all" {
		t.Errorf("matched label = %q", label)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/123", nil))
	if label != Unmatched {
		t.Errorf("unmatched label = %q", label)
	}
}
