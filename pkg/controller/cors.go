package controller

import (
	"net/http"
	"slices"
	"strconv"
)

const corsMaxAge = 10 * 60 // seconds

// WithCORS returns a middleware that lets browser clients on the given
// origins call the API. A "*" entry allows any origin without credentials.
// Listed origins are echoed back and may send credentials. OPTIONS requests
// are answered without calling next: 204 for allowed or origin-less requests,
// 403 when the Origin header names an origin that is not allowed.
func WithCORS(origins []string, next http.Handler) http.Handler {
	anyOrigin := slices.Contains(origins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Add("Vary", "Origin")

		origin := r.Header.Get("Origin")
		allowed := true
		switch {
		case anyOrigin:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(origins, origin):
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		default:
			allowed = origin == ""
		}

		if h.Get("Access-Control-Allow-Origin") != "" {
			h.Set("Access-Control-Expose-Headers", RequestIDHeader)
		}

		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)

			return
		}

		if !allowed {
			w.WriteHeader(http.StatusForbidden)

			return
		}

		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
		h.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
		w.WriteHeader(http.StatusNoContent)
	})
}
