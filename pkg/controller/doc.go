// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Answers browser cross-origin checks for the configured frontend origins.
//   - WithLogger: Assigns request IDs, scopes the context logger and writes the access log.
//   - WithTimeout: Puts a deadline on the request context.
//   - WithMetrics: Records request latency per route in a Prometheus histogram.
//
// Handlers add upload details to the access log with AnnotateAccessLog.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
//   - Healthz, Readyz: Liveness and readiness probes.
package controller
