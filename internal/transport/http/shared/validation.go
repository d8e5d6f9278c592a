package shared

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrportal/internal/domain/validation"
	"hrportal/internal/transport/http/api"
)

// Validator collects problems with query and path parameters. Request
// bodies are validated by the domain packages.
type Validator struct {
	verr validation.Error
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Add(field, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	v.verr.Add(strings.TrimSpace(field), message)
}

func (v *Validator) Required(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, message)
	}
}

func (v *Validator) Enum(field, value string, allowed []string, message string) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return
	}
	for _, candidate := range allowed {
		if normalized == strings.ToLower(candidate) {
			return
		}
	}
	v.Add(field, message)
}

// OptionalDate parses raw when present. An empty value yields the zero time.
func (v *Validator) OptionalDate(field, raw string) time.Time {
	parsed, err := ParseDate(strings.TrimSpace(raw))
	if err != nil {
		v.Add(field, "Must be a valid date in YYYY-MM-DD format")
		return time.Time{}
	}
	return parsed
}

// UUID returns raw in canonical form. A non-empty value that is not a UUID
// records an issue and yields "".
func (v *Validator) UUID(field, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		v.Add(field, "Must be a valid identifier")
		return ""
	}
	return id.String()
}

func (v *Validator) QueryUUID(r *http.Request, name string) string {
	return v.UUID(name, r.URL.Query().Get(name))
}

func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(endField, "Must be on or after "+startField)
	}
}

func (v *Validator) HasIssues() bool {
	return len(v.verr.Issues) > 0
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, &v.verr)
	return true
}

// FailValidation writes a 400 carrying every issue and the first message.
func FailValidation(w http.ResponseWriter, requestID string, verr *validation.Error) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		verr.Error(),
		map[string]any{"fields": verr.Issues},
		requestID,
	)
}
