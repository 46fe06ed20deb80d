// Package middleware provides HTTP middleware for the live server.
//
// Two middlewares are included:
//
//   - Prometheus: records request counts and durations, plus a gauge of
//     open WebSocket sessions fed by RecordSessionOpen/RecordSessionClose.
//   - OpenTelemetry: opens one server span per request through the global
//     tracer provider.
//
// Both are standard func(http.Handler) http.Handler middlewares and
// compose with chi:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus())
//	r.Use(middleware.OpenTelemetry())
package middleware
