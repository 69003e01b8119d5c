package controller

import (
	"net/http"
	"strconv"
	"time"
	"veggieplan/pkg/metrics"
)

// WithMetrics returns a middleware that records the latency and final status
// of every request served by next under the given route label.
func WithMetrics(route string, m *metrics.HTTPRequestDuration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.Observe(r.Method, route, strconv.Itoa(rec.status), time.Since(start).Seconds())
	})
}
