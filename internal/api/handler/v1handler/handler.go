// Package v1handler implements the HTTP handlers of the public API.
package v1handler

import (
	"context"
	"errors"
	"net/http"
	"veggieplan/internal/analyzer"
	"veggieplan/pkg/logger"
	"veggieplan/pkg/serrors"
	"veggieplan/pkg/textsource"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes is used when Deps.MaxUploadBytes is not positive.
const DefaultMaxUploadBytes = 10 << 20

type Deps struct {
	Analyzer       analyzer.Analyzer
	MaxUploadBytes int64
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = DefaultMaxUploadBytes
	}

	return &Handler{deps: deps}
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// Encode writes the response body as JSON.
func (r ErrorResponse) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("code")
	e.Str(r.Code)
	e.FieldStart("message")
	e.Str(r.Message)
	e.ObjEnd()
}

// StatusFor maps a semantic error kind to an HTTP status code.
func StatusFor(k serrors.Kind) int {
	switch k {
	case serrors.ErrBadRequest, textsource.ErrImageDecode:
		return http.StatusBadRequest
	case serrors.ErrUnprocessable:
		return http.StatusUnprocessableEntity
	case serrors.ErrRateLimited:
		return http.StatusTooManyRequests
	case serrors.ErrUnavailable, textsource.ErrRecognitionFailure:
		return http.StatusServiceUnavailable
	case serrors.ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// NewError converts err into an ErrorResponse. Errors without a known kind
// are logged and reported as internal errors without leaking details.
// An expired request deadline anywhere in the chain is reported as a timeout.
func (h Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	k, msg := serrors.KindOf(err), serrors.MessageOf(err)
	if errors.Is(err, context.DeadlineExceeded) {
		k, msg = serrors.ErrTimeout, "request timed out"
	}
	status := StatusFor(k)

	if status == http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))

		return &ErrorResponse{
			StatusCode: status,
			Code:       serrors.ErrInternal.Error(),
			Message:    "internal error",
		}
	}

	logger.Warn(ctx, "request rejected", zap.Error(err), zap.Int("status", status))

	if msg == "" {
		msg = k.Error()
	}

	return &ErrorResponse{
		StatusCode: status,
		Code:       k.Error(),
		Message:    msg,
	}
}

// writeError writes err as an ErrorResponse.
func (h Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	res := h.NewError(ctx, err)
	writeJSON(ctx, w, res.StatusCode, res.Encode)
}

// writeJSON encodes a body with enc and writes it with the given status.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, enc func(e *jx.Encoder)) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	enc(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(e.Bytes()); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}
