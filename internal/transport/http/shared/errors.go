package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"hrportal/internal/domain/validation"
	"hrportal/internal/platform/db"
	"hrportal/internal/transport/http/api"
)

// WriteError maps domain and storage errors onto the response envelope.
// fallbackCode names the operation in the 500 response.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	requestID := requestIDFrom(r)

	if verr, ok := validation.As(err); ok {
		FailValidation(w, requestID, verr)
		return
	}
	var dup *db.DuplicateError
	switch {
	case errors.As(err, &dup):
		api.Fail(w, http.StatusConflict, "duplicate", dup.Message, requestID)
	case errors.Is(err, db.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "record not found", requestID)
	case errors.Is(err, db.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", stateMessage(err), requestID)
	case errors.Is(err, db.ErrInvalidReference):
		api.Fail(w, http.StatusBadRequest, "invalid_reference", "a referenced record does not exist", requestID)
	case errors.Is(err, db.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_input", "a value has an invalid format", requestID)
	case errors.Is(err, db.ErrCheckViolation):
		api.Fail(w, http.StatusBadRequest, "constraint_violation", "a value violates a data constraint", requestID)
	default:
		slog.Error("request failed", "code", fallbackCode, "method", r.Method, "path", r.URL.Path, "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, fallbackCode, "internal error", requestID)
	}
}

func stateMessage(err error) string {
	var se *db.StateError
	if errors.As(err, &se) {
		return se.Message
	}
	return db.ErrInvalidState.Error()
}
