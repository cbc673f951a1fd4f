package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokenValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_validations_total",
			Help: "Bearer token validations by result (valid, invalid)",
		},
		[]string{"result"},
	)

	tokenValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_token_validation_duration_seconds",
			Help:    "Time spent verifying bearer tokens",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	// accessDenied counts 403s. caller_role is the highest role the caller
	// holds, "none" for anonymous callers.
	accessDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_access_denied_total",
			Help: "Requests rejected by the role gate",
		},
		[]string{"required_role", "caller_role", "method"},
	)
)

func recordTokenValidation(valid bool, seconds float64) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	tokenValidations.WithLabelValues(result).Inc()
	tokenValidationDuration.Observe(seconds)
}

func recordAccessDenied(required, caller, method string) {
	accessDenied.WithLabelValues(required, caller, method).Inc()
}
