// Package tracing provides OpenTelemetry tracing for the API.
//
// Middleware starts one server span per request, honouring incoming W3C
// trace context, and names it after the matched route. Services start child
// spans through GetTracer.
//
// Example usage:
//
//	_, shutdown := tracing.InitTracer(0.1)
//	defer func() { _ = shutdown(context.Background()) }()
//
//	handler := tracing.Middleware(mux)
//
//	ctx, span := tracing.GetTracer().Start(ctx, "HelpRequest.get")
//	defer span.End()
package tracing
