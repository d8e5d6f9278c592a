package shared

import (
	"net/http"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns midnight UTC of that
// calendar day. An empty value yields the zero time.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(DateLayout, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := parsed.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// OptionalDatePtr is OptionalDate for nullable columns.
func (v *Validator) OptionalDatePtr(field, raw string) *time.Time {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parsed := v.OptionalDate(field, raw)
	if parsed.IsZero() {
		return nil
	}
	return &parsed
}

// QueryDate reads a date from the query string.
func (v *Validator) QueryDate(r *http.Request, name string) time.Time {
	return v.OptionalDate(name, r.URL.Query().Get(name))
}
