package controller

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
	"veggieplan/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-Id"

// responseRecorder captures the status code and body size written downstream.
type responseRecorder struct {
	http.ResponseWriter

	status int
	bytes  int
}

func (rec *responseRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *responseRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n

	return n, err //nolint: wrapcheck
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rec *responseRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

type requestIDKey struct{}

// RequestID returns the ID WithLogger assigned to the request, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)

	return id
}

// newRequestID keeps a client supplied ID when it parses as a UUID and
// generates a fresh one otherwise, so arbitrary header text never reaches logs.
func newRequestID(r *http.Request) string {
	if id, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err == nil {
		return id.String()
	}

	return uuid.NewString()
}

type accessKey struct{}

type accessFields struct {
	fields []zap.Field
}

// AnnotateAccessLog appends fields to the access log line WithLogger writes
// once the request completes. Outside WithLogger it does nothing.
func AnnotateAccessLog(ctx context.Context, fields ...zap.Field) {
	if a, _ := ctx.Value(accessKey{}).(*accessFields); a != nil {
		a.fields = append(a.fields, fields...)
	}
}

// ClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the
// peer address of r.
func ClientIP(r *http.Request) string {
	if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}

// WithLogger returns a middleware that assigns a request ID, echoes it in the
// response, scopes the context logger to it and writes one access log line per
// request. Server errors are logged at warn level.
func WithLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := newRequestID(r)
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		ctx = logger.WithFields(ctx, zap.String("request_id", id))
		access := &accessFields{}
		ctx = context.WithValue(ctx, accessKey{}, access)

		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		fields := append([]zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.Int64("request_bytes", r.ContentLength),
			zap.Int("response_bytes", rec.bytes),
			zap.String("client_ip", ClientIP(r)),
			zap.String("user_agent", r.UserAgent()),
		}, access.fields...)

		if rec.status >= http.StatusInternalServerError {
			logger.Warn(ctx, "access log", fields...)

			return
		}
		logger.Info(ctx, "access log", fields...)
	})
}
