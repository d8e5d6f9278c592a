// Package handlertest drives handler packages through a chi router with an
// authenticated user already on the context.
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/auth"
	"hrportal/internal/transport/http/middleware"
)

type Routes interface {
	RegisterRoutes(r chi.Router)
}

type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}

var (
	HR       = auth.UserContext{UserID: "11111111-1111-1111-1111-111111111111", EmployeeID: "aaaaaaaa-0000-0000-0000-000000000001", RoleName: auth.RoleHR}
	Manager  = auth.UserContext{UserID: "22222222-2222-2222-2222-222222222222", EmployeeID: "aaaaaaaa-0000-0000-0000-000000000002", RoleName: auth.RoleManager}
	Employee = auth.UserContext{UserID: "33333333-3333-3333-3333-333333333333", EmployeeID: "aaaaaaaa-0000-0000-0000-000000000003", RoleName: auth.RoleEmployee}
)

// Do serves one request. body may be nil, a string of raw JSON, or any
// value to marshal.
func Do(t *testing.T, routes Routes, user *auth.UserContext, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if user != nil {
		u := *user
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.WithUser(req.Context(), u)))
			})
		})
	}
	routes.RegisterRoutes(r)

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func Decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

// Data decodes the envelope's data into dst and returns the envelope.
func Data(t *testing.T, rec *httptest.ResponseRecorder, dst any) Envelope {
	t.Helper()
	env := Decode(t, rec)
	require.True(t, env.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dst))
	return env
}

// ErrorCode asserts the status and returns the envelope error code.
func ErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int) string {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	env := Decode(t, rec)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error.Code
}

// Audit remembers recorded entries.
type Audit struct {
	Entries []audit.Entry
}

func (a *Audit) Record(_ context.Context, entry audit.Entry) error {
	a.Entries = append(a.Entries, entry)
	return nil
}

func (a *Audit) Actions() []string {
	out := make([]string, 0, len(a.Entries))
	for _, e := range a.Entries {
		out = append(out, e.Action)
	}
	return out
}

func Ptr[T any](v T) *T {
	return &v
}
