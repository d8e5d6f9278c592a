package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/validation"
	"hrportal/internal/platform/db"
)

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Fields []validation.Issue `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWriteErrorMapping(t *testing.T) {
	verr := &validation.Error{}
	verr.Add("endDate", "End date cannot be before start date.")

	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", verr, http.StatusBadRequest, "validation_error", "End date cannot be before start date."},
		{"not found", db.ErrNotFound, http.StatusNotFound, "not_found", "record not found"},
		{"duplicate", &db.DuplicateError{Message: "An employee with this national ID already exists."}, http.StatusConflict, "duplicate", "An employee with this national ID already exists."},
		{"state", fmt.Errorf("approve: %w", db.InvalidState("only pending leave requests can be approved")), http.StatusConflict, "invalid_state", "only pending leave requests can be approved"},
		{"reference", errors.Join(db.ErrInvalidReference, errors.New("fk")), http.StatusBadRequest, "invalid_reference", "a referenced record does not exist"},
		{"malformed value", db.Classify(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "x"`}), http.StatusBadRequest, "invalid_input", "a value has an invalid format"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "thing_failed", "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err, "thing_failed")
			require.Equal(t, tc.status, rec.Code)
			env := decode(t, rec)
			require.False(t, env.Success)
			require.Equal(t, tc.code, env.Error.Code)
			require.Equal(t, tc.message, env.Error.Message)
		})
	}
}

func TestWriteErrorValidationCarriesFields(t *testing.T) {
	verr := &validation.Error{}
	verr.Add("contacts[0].phone", "Contact phone number is required")
	verr.Add("hireDate", "Hire date is required")

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), verr, "x")
	env := decode(t, rec)
	require.Len(t, env.Error.Details.Fields, 2)
	require.Equal(t, "contacts[0].phone", env.Error.Details.Fields[0].Field)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	ok := DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"HR"}`)), &dst)
	require.True(t, ok)
	require.Equal(t, "HR", dst.Name)

	rec = httptest.NewRecorder()
	ok = DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nme":"HR"}`)), &dst)
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	ok = DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &dst)
	require.False(t, ok)
	require.Equal(t, "request body is required", decode(t, rec).Error.Message)
}

func TestDecodeJSONTooLarge(t *testing.T) {
	var dst map[string]any
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)

	require.False(t, DecodeJSON(rec, req, &dst))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestValidatorDates(t *testing.T) {
	v := NewValidator()
	from := v.OptionalDate("from", "2024-05-01")
	to := v.OptionalDate("to", "2024-04-01")
	v.DateOrder("from", from, "to", to)
	v.OptionalDate("day", "yesterday")
	require.True(t, v.HasIssues())

	rec := httptest.NewRecorder()
	require.True(t, v.Reject(rec, "req-1"))
	env := decode(t, rec)
	require.Len(t, env.Error.Details.Fields, 2)
	require.Equal(t, "to", env.Error.Details.Fields[0].Field)
}

func TestParsePage(t *testing.T) {
	v := NewValidator()
	p := ParsePage(httptest.NewRequest(http.MethodGet, "/?limit=500&offset=20", nil), v)
	require.Equal(t, MaxPageSize, p.Limit)
	require.Equal(t, 20, p.Offset)
	require.False(t, v.HasIssues())

	p = ParsePage(httptest.NewRequest(http.MethodGet, "/", nil), v)
	require.Equal(t, DefaultPageSize, p.Limit)

	ParsePage(httptest.NewRequest(http.MethodGet, "/?limit=-1&offset=x", nil), v)
	require.True(t, v.HasIssues())
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), day)

	day, err = ParseDate("2024-02-29T17:45:00+03:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDate("29/02/2024")
	require.Error(t, err)

	v := NewValidator()
	require.Nil(t, v.OptionalDatePtr("endDate", ""))
	require.NotNil(t, v.OptionalDatePtr("endDate", "2024-03-01"))
	require.Nil(t, v.OptionalDatePtr("endDate", "soon"))
	require.True(t, v.HasIssues())
}

type auditSpy struct {
	entries []audit.Entry
	err     error
}

func (a *auditSpy) Record(_ context.Context, entry audit.Entry) error {
	a.entries = append(a.entries, entry)
	return a.err
}

func TestRecordAudit(t *testing.T) {
	spy := &auditSpy{err: errors.New("down")}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "192.0.2.1:1000"

	RecordAudit(req, spy, "user-1", "employee.create", "employee", "e1", map[string]string{"id": "e1"})
	require.Len(t, spy.entries, 1)
	require.Equal(t, "192.0.2.1", spy.entries[0].IP)
	require.Equal(t, "employee.create", spy.entries[0].Action)

	RecordAudit(req, nil, "user-1", "employee.create", "employee", "e1", nil)
}

func TestPathID(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Get("/employees/{employeeID}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := PathID(w, r, "employeeID")
		if !ok {
			return
		}
		got = id
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/6F9619FF-8B86-D011-B42D-00CF4FC964FF", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "6f9619ff-8b86-d011-b42d-00cf4fc964ff", got)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.Equal(t, "validation_error", env.Error.Code)
	require.Equal(t, "employeeID", env.Error.Details.Fields[0].Field)
}

func TestValidatorQueryUUID(t *testing.T) {
	v := NewValidator()
	req := httptest.NewRequest(http.MethodGet, "/?departmentId=x&managerId=&employeeId=6f9619ff-8b86-d011-b42d-00cf4fc964ff", nil)
	require.Empty(t, v.QueryUUID(req, "managerId"))
	require.False(t, v.HasIssues())
	require.Equal(t, "6f9619ff-8b86-d011-b42d-00cf4fc964ff", v.QueryUUID(req, "employeeId"))
	require.Empty(t, v.QueryUUID(req, "departmentId"))
	require.True(t, v.HasIssues())
}
