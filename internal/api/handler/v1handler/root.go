package v1handler

import (
	"net/http"

	"github.com/go-faster/jx"
)

// WelcomeMessage is returned by the root endpoint.
const WelcomeMessage = "Welcome to VeggiePlan API"

// Root greets API clients.
func (h Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("message")
		e.Str(WelcomeMessage)
		e.ObjEnd()
	})
}
