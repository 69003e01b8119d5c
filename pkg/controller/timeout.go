package controller

import (
	"context"
	"net/http"
	"time"
)

// WithTimeout returns a middleware that cancels the request context after d.
// Handlers observe the deadline through ctx and report it themselves, so the
// response keeps the API's status codes and error body. A non-positive d
// disables the deadline.
func WithTimeout(d time.Duration, next http.Handler) http.Handler {
	if d <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
