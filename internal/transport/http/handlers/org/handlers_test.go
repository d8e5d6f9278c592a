package orghandler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/org"
	"hrportal/internal/platform/db"
	"hrportal/internal/transport/http/handlers/handlertest"
)

const (
	missingDepartmentID = "eeeeeeee-0000-0000-0000-000000000009"
)

type fakeService struct {
	created   org.DepartmentInput
	createErr error
	patched   string
	grade     org.JobGradeInput
}

func (f *fakeService) ListDepartments(context.Context) ([]org.Department, error) {
	return []org.Department{{ID: "d1", Name: "Engineering", Headcount: 3}}, nil
}

func (f *fakeService) CreateDepartment(_ context.Context, in org.DepartmentInput) (org.Department, error) {
	f.created = in
	return org.Department{ID: "d2", Name: in.Name}, f.createErr
}

func (f *fakeService) UpdateDepartment(_ context.Context, id string, _ org.DepartmentPatch) error {
	f.patched = id
	if id == missingDepartmentID {
		return db.ErrNotFound
	}
	return nil
}

func (f *fakeService) ListJobGrades(context.Context) ([]org.JobGrade, error) {
	return nil, nil
}

func (f *fakeService) CreateJobGrade(_ context.Context, in org.JobGradeInput) (org.JobGrade, error) {
	f.grade = in
	return org.JobGrade{ID: "g1", Code: in.Code}, nil
}

func TestDepartments(t *testing.T) {
	svc := &fakeService{}
	audit := &handlertest.Audit{}
	h := NewHandler(svc, auth.StaticPermissions{}, audit)

	rec := handlertest.Do(t, h, &handlertest.Employee, http.MethodGet, "/departments", nil)
	var depts []org.Department
	handlertest.Data(t, rec, &depts)
	require.Equal(t, 3, depts[0].Headcount)

	rec = handlertest.Do(t, h, &handlertest.Manager, http.MethodPost, "/departments", map[string]any{"name": "Design"})
	require.Equal(t, "forbidden", handlertest.ErrorCode(t, rec, http.StatusForbidden))

	rec = handlertest.Do(t, h, &handlertest.HR, http.MethodPost, "/departments", map[string]any{"name": "Design", "code": "DSN"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "DSN", svc.created.Code)

	svc.createErr = &db.DuplicateError{Message: "A department with this name already exists."}
	rec = handlertest.Do(t, h, &handlertest.HR, http.MethodPost, "/departments", map[string]any{"name": "Design"})
	require.Equal(t, "duplicate", handlertest.ErrorCode(t, rec, http.StatusConflict))

	rec = handlertest.Do(t, h, &handlertest.HR, http.MethodPatch, "/departments/"+missingDepartmentID, map[string]any{"name": "X"})
	require.Equal(t, "not_found", handlertest.ErrorCode(t, rec, http.StatusNotFound))

	require.Equal(t, []string{"org.department.create"}, audit.Actions())
}

func TestDepartmentRejectsUnknownFields(t *testing.T) {
	h := NewHandler(&fakeService{}, auth.StaticPermissions{}, nil)
	rec := handlertest.Do(t, h, &handlertest.HR, http.MethodPost, "/departments", `{"name":"Design","budget":1}`)
	require.Equal(t, "invalid_payload", handlertest.ErrorCode(t, rec, http.StatusBadRequest))
}

func TestCreateJobGradeDecodesDecimals(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, auth.StaticPermissions{}, &handlertest.Audit{})
	rec := handlertest.Do(t, h, &handlertest.HR, http.MethodPost, "/job-grades", `{"code":"G1","name":"Junior","level":1,"minSalary":"30000.00","maxSalary":45000}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "30000", svc.grade.MinSalary.String())
	require.Equal(t, "45000", svc.grade.MaxSalary.String())
}
