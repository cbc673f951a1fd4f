package auth

import "strings"

// PublicEndpoints defines endpoints that never need a token.
//
// - /health, /ready, /live: orchestration health checks
// - /metrics: Prometheus scraping
// - /swagger/: API documentation
// - /api/systemInfo: front-end bootstrap before login
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
	"/api/systemInfo",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Matching logic:
// - Endpoints ending with '/' use prefix matching (e.g., /swagger/* matches /swagger/index.html)
// - Endpoints without '/' require exact match, a trailing slash or query params only
//
// Example:
//
//	IsPublicEndpoint("/health")             // true
//	IsPublicEndpoint("/health?x=1")         // true (query params OK)
//	IsPublicEndpoint("/health/detail")      // false (subpath not allowed)
//	IsPublicEndpoint("/swagger/index.html") // true (prefix match)
//	IsPublicEndpoint("/api/articles/all")   // false
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint || path == endpoint+"/" || strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
