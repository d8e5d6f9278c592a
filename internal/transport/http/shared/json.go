package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hrportal/internal/transport/http/api"
)

// DecodeJSON reads the body into dst and writes the failure response itself.
// It reports whether the handler may continue.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		return true
	}

	requestID := requestIDFrom(r)
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
	case errors.Is(err, io.EOF):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body is required", requestID)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
	}
	return false
}
