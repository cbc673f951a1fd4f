// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

type directive struct {
	name    string
	sources []string
}

// Policy is an ordered list of CSP directives. Setting a directive twice
// replaces its sources and keeps its first position.
type Policy struct {
	directives []directive
}

// New returns an empty policy.
func New() *Policy { return &Policy{} }

// Set sets directive name to sources.
func (p *Policy) Set(name string, sources ...string) *Policy {
	for i := range p.directives {
		if p.directives[i].name == name {
			p.directives[i].sources = sources
			return p
		}
	}
	p.directives = append(p.directives, directive{name: name, sources: sources})
	return p
}

// String renders the header value, e.g. "default-src 'none'; frame-ancestors 'none'".
// Directives without sources are omitted.
func (p *Policy) String() string {
	parts := make([]string, 0, len(p.directives))
	for _, d := range p.directives {
		if len(d.sources) == 0 {
			continue
		}
		parts = append(parts, d.name+" "+strings.Join(d.sources, " "))
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the enforcing or the report-only header name.
func HeaderName(reportOnly bool) string {
	if reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// APIPolicy is the policy for JSON endpoints: nothing may load or frame them.
func APIPolicy() *Policy {
	return New().
		Set("default-src", "'none'").
		Set("frame-ancestors", "'none'").
		Set("base-uri", "'none'").
		Set("form-action", "'none'")
}

// SwaggerUIPolicy allows what the bundled Swagger UI needs: its inline
// bootstrap script and styles, data: images and same-origin doc fetches.
func SwaggerUIPolicy() *Policy {
	return New().
		Set("default-src", "'self'").
		Set("script-src", "'self'", "'unsafe-inline'").
		Set("style-src", "'self'", "'unsafe-inline'").
		Set("img-src", "'self'", "data:").
		Set("font-src", "'self'", "data:").
		Set("connect-src", "'self'").
		Set("frame-ancestors", "'none'").
		Set("base-uri", "'self'").
		Set("form-action", "'self'").
		Set("object-src", "'none'")
}
