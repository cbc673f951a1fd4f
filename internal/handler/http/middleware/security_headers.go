package middleware

import (
	"net/http"
	"strings"

	"campus-api/pkg/security/csp"
)

// SecurityHeadersConfig selects the CSP per path prefix.
type SecurityHeadersConfig struct {
	// Default applies to every path without a more specific entry.
	Default *csp.Policy
	// PathPolicies maps a path prefix such as "/swagger/" to its policy.
	// The longest matching prefix wins.
	PathPolicies map[string]*csp.Policy
	ReportOnly   bool
}

// DefaultSecurityHeadersConfig locks down the JSON API and relaxes the
// policy for the Swagger UI only.
func DefaultSecurityHeadersConfig(reportOnly bool) SecurityHeadersConfig {
	return SecurityHeadersConfig{
		Default:      csp.APIPolicy(),
		PathPolicies: map[string]*csp.Policy{"/swagger/": csp.SwaggerUIPolicy()},
		ReportOnly:   reportOnly,
	}
}

// SecurityHeaders sets the CSP header plus nosniff, frame and referrer
// headers on every response. Header values are rendered once.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	header := csp.HeaderName(cfg.ReportOnly)
	var def string
	if cfg.Default != nil {
		def = cfg.Default.String()
	}
	type prefixPolicy struct{ prefix, value string }
	var paths []prefixPolicy
	for prefix, p := range cfg.PathPolicies {
		paths = append(paths, prefixPolicy{prefix, p.String()})
	}

	policyFor := func(path string) string {
		best, value := -1, def
		for _, pp := range paths {
			if strings.HasPrefix(path, pp.prefix) && len(pp.prefix) > best {
				best, value = len(pp.prefix), pp.value
			}
		}
		return value
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if v := policyFor(r.URL.Path); v != "" {
				h.Set(header, v)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}
