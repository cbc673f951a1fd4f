package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_String(t *testing.T) {
	tests := []struct {
		name   string
		policy *Policy
		want   string
	}{
		{"empty", New(), ""},
		{"single", New().Set("default-src", "'self'"), "default-src 'self'"},
		{
			"keeps insertion order",
			New().Set("script-src", "'self'", "https://cdn.example.com").Set("default-src", "'none'"),
			"script-src 'self' https://cdn.example.com; default-src 'none'",
		},
		{
			"reset replaces sources in place",
			New().Set("default-src", "'self'").Set("img-src", "data:").Set("default-src", "'none'"),
			"default-src 'none'; img-src data:",
		},
		{"directive without sources omitted", New().Set("default-src").Set("img-src", "data:"), "img-src data:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.String())
		})
	}
}

func TestHeaderName(t *testing.T) {
	assert.Equal(t, "Content-Security-Policy", HeaderName(false))
	assert.Equal(t, "Content-Security-Policy-Report-Only", HeaderName(true))
}

func TestAPIPolicy(t *testing.T) {
	assert.Equal(t,
		"default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'",
		APIPolicy().String())
}

func TestSwaggerUIPolicy(t *testing.T) {
	p := SwaggerUIPolicy().String()

	assert.Contains(t, p, "script-src 'self' 'unsafe-inline'")
	assert.Contains(t, p, "img-src 'self' data:")
	assert.Contains(t, p, "frame-ancestors 'none'")
	assert.Contains(t, p, "object-src 'none'")
	assert.NotContains(t, p, "unsafe-eval")
}
