package shared

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/requestctx"
)

func requestIDFrom(r *http.Request) string {
	return requestctx.RequestID(r.Context())
}

// PathID reads a UUID route parameter. A missing or malformed value is
// answered with a 400 and ok is false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := NewValidator()
	id := v.UUID(name, chi.URLParam(r, name))
	if id == "" && !v.HasIssues() {
		v.Add(name, "Must be a valid identifier")
	}
	if v.Reject(w, requestIDFrom(r)) {
		return "", false
	}
	return id, true
}
