package shared

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset. Malformed values are reported on v;
// oversized limits are clamped.
func ParsePage(r *http.Request, v *Validator) Page {
	page := Page{Limit: DefaultPageSize}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			v.Add("limit", "Limit must be a positive number")
		} else {
			page.Limit = min(n, MaxPageSize)
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			v.Add("offset", "Offset must be zero or a positive number")
		} else {
			page.Offset = n
		}
	}
	return page
}

// Paged is the list payload for endpoints that report a total.
type Paged[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
