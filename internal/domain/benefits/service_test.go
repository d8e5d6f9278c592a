package benefits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"hrportal/internal/domain/validation"
	"hrportal/internal/platform/db"
)

const (
	employeeA = "3f0c7a52-8f65-4f4a-9a43-5c7a1d0c2b11"
	employeeB = "8b2e4f10-1d2c-4c5e-9f0a-7a6b5c4d3e21"
)

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewService(mock), mock
}

func validPlan() PlanInput {
	cost := decimal.NewFromInt(250)
	return PlanInput{
		Name:          "Gold Health",
		BenefitType:   "health",
		Cost:          &cost,
		EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EmployeeIDs:   []string{employeeA, employeeB, employeeA},
	}
}

func TestCreatePlanRejectsMissingCostWithoutQuery(t *testing.T) {
	svc, mock := newTestService(t)
	in := validPlan()
	in.Cost = nil

	_, err := svc.CreatePlan(context.Background(), in)
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.True(t, verr.Has("cost"))
	require.Equal(t, "Cost is required", verr.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePlanRejectsMissingEffectiveDateWithoutQuery(t *testing.T) {
	svc, mock := newTestService(t)
	in := validPlan()
	in.EffectiveDate = time.Time{}

	_, err := svc.CreatePlan(context.Background(), in)
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.True(t, verr.Has("effectiveDate"))
	require.Equal(t, "Effective date is required", verr.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePlanRejectsContributionAboveCost(t *testing.T) {
	svc, mock := newTestService(t)
	in := validPlan()
	in.EmployeeContribution = decimal.NewFromInt(300)

	_, err := svc.CreatePlan(context.Background(), in)
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.True(t, verr.Has("employeeContribution"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePlanWritesEnrollmentsInSameTransaction(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO benefit_plans").
		WithArgs("Gold Health", "health", nil, nil, pgxmock.AnyArg(), pgxmock.AnyArg(), "USD", validPlan().EffectiveDate, pgxmock.AnyArg(), StatusActive).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("plan-1", now))
	mock.ExpectQuery("INSERT INTO employee_benefits").
		WithArgs("plan-1", employeeA, validPlan().EffectiveDate, CoverageEmployee, StatusActive,
			"plan-1", employeeB, validPlan().EffectiveDate, CoverageEmployee, StatusActive).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("en-1", now).AddRow("en-2", now))
	mock.ExpectCommit()

	out, err := svc.CreatePlan(context.Background(), validPlan())
	require.NoError(t, err)
	require.Equal(t, "plan-1", out.Plan.ID)
	require.Equal(t, 2, out.Plan.Enrolled)
	require.Len(t, out.Enrollments, 2)
	require.Equal(t, employeeB, out.Enrollments[1].EmployeeID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePlanRollsBackWhenEnrollmentFails(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO benefit_plans").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("plan-1", now))
	mock.ExpectQuery("INSERT INTO employee_benefits").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "employee_benefits_employee_id_fkey"})
	mock.ExpectRollback()

	_, err := svc.CreatePlan(context.Background(), validPlan())
	require.ErrorIs(t, err, db.ErrInvalidReference)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollEmployeesDuplicate(t *testing.T) {
	svc, mock := newTestService(t)
	on := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("plan-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("INSERT INTO employee_benefits").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employee_benefits_plan_employee_key"})
	mock.ExpectRollback()

	_, err := svc.EnrollEmployees(context.Background(), "plan-1", EnrollmentInput{EmployeeIDs: []string{employeeA}, EnrollmentDate: on})
	var dup *db.DuplicateError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, "Employee is already enrolled in this plan.", dup.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollEmployeesUnknownPlan(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := svc.EnrollEmployees(context.Background(), "missing", EnrollmentInput{
		EmployeeIDs:    []string{employeeA},
		EnrollmentDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, db.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollEmployeesRequiresEmployees(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.EnrollEmployees(context.Background(), "plan-1", EnrollmentInput{EnrollmentDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.True(t, verr.Has("employeeIds"))
	require.NoError(t, mock.ExpectationsWereMet())
}
