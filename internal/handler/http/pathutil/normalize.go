// Package pathutil maps request paths to low-cardinality metric labels.
package pathutil

import (
	"net/http"
	"regexp"
	"strings"
)

// Unmatched is the label for any path that is not a known route.
const Unmatched = "/unmatched"

// PathPattern represents a regex pattern and its corresponding normalized template.
// An empty Template keeps the matched path as is.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the routes served by the API.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	// Resource routes: list, create and the keyed route
	{Pattern: regexp.MustCompile(`^/api/[a-z]+/(all|post)$`)},
	{Pattern: regexp.MustCompile(`^/api/[a-z]+$`)},

	// Front-end bootstrap
	{Pattern: regexp.MustCompile(`^/api/(currentUser|systemInfo)$`)},

	// Operations
	{Pattern: regexp.MustCompile(`^/(health|ready|live|metrics)$`)},
	{Pattern: regexp.MustCompile(`^/swagger(/.*)?$`), Template: "/swagger/*"},
}

// NormalizePath normalizes URL paths to prevent metrics label cardinality explosion.
// Known routes keep their path, swagger assets collapse to one label and
// everything else becomes Unmatched.
//
// Examples:
//
//	NormalizePath("/api/articles/all")          // "/api/articles/all"
//	NormalizePath("/api/helprequest?id=7")      // "/api/helprequest"
//	NormalizePath("/swagger/index.html")        // "/swagger/*"
//	NormalizePath("/wp-login.php")              // "/unmatched"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			if p.Template != "" {
				return p.Template
			}
			return path
		}
	}
	return Unmatched
}

// RouteLabel returns the label for a served request. It prefers the
// ServeMux pattern that matched, so it must be called after the mux ran.
func RouteLabel(r *http.Request) string {
	if r.Pattern != "" {
		// "GET /api/articles/all" -> "/api/articles/all"
		if i := strings.IndexByte(r.Pattern, ' '); i != -1 {
			return strings.TrimSpace(r.Pattern[i+1:])
		}
		return r.Pattern
	}
	return NormalizePath(r.URL.Path)
}
