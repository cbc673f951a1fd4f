// Package logging builds the service's slog loggers.
//
// Logs are JSON on stdout by default; LOG_FORMAT=text switches to the
// key=value handler for local runs. Every entry carries service=campus-api,
// and request-scoped loggers add request_id. The package also owns the
// request-ID context value and SanitizeError so layers below the HTTP
// handlers can use both without importing them:
//
//	logger := logging.New(os.Stdout, logging.Options{Level: "debug"})
//	logging.WithRequestID(r.Context(), logger).Info("organization upserted")
package logging
