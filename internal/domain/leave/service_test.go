package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"hrportal/internal/domain/validation"
	"hrportal/internal/platform/db"
)

const employeeID = "3f0c7a52-8f65-4f4a-9a43-5c7a1d0c2b11"

var requestCols = []string{"id", "employee_id", "employee_name", "leave_type", "start_date", "end_date", "days", "reason", "status", "approved_by", "approved_at", "created_at"}

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewService(mock), mock
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSubmitRequestRejectsEndBeforeStartWithoutQuery(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.SubmitRequest(context.Background(), RequestInput{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  date(2024, 3, 10),
		EndDate:    date(2024, 3, 8),
	})
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.True(t, verr.Has("endDate"))
	require.Equal(t, MessageEndBeforeStart, verr.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRequestRequiresLeaveType(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.SubmitRequest(context.Background(), RequestInput{
		EmployeeID: employeeID,
		StartDate:  date(2024, 3, 10),
		EndDate:    date(2024, 3, 12),
	})
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.True(t, verr.Has("leaveType"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRequestDerivesDays(t *testing.T) {
	svc, mock := newTestService(t)
	created := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO leave_requests").
		WithArgs(employeeID, "annual", date(2023, 4, 10), date(2023, 4, 14), 5, "Family trip", StatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("lr-1", created))

	req, err := svc.SubmitRequest(context.Background(), RequestInput{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  date(2023, 4, 10),
		EndDate:    date(2023, 4, 14),
		Reason:     " Family trip ",
	})
	require.NoError(t, err)
	require.Equal(t, 5, req.Days)
	require.Equal(t, StatusPending, req.Status)
	require.Equal(t, "lr-1", req.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRequestChargesBalance(t *testing.T) {
	svc, mock := newTestService(t)
	created := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	approvedAt := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM leave_requests r JOIN employees e").
		WithArgs("lr-1").
		WillReturnRows(pgxmock.NewRows(requestCols).
			AddRow("lr-1", employeeID, "Amina Okafor", "annual", date(2024, 5, 6), date(2024, 5, 10), 5, "", StatusPending, "", nil, created))
	mock.ExpectQuery("UPDATE leave_requests").
		WithArgs("lr-1", StatusApproved, "mgr-1").
		WillReturnRows(pgxmock.NewRows([]string{"approved_at"}).AddRow(approvedAt))
	mock.ExpectExec("UPDATE leave_balances").
		WithArgs(employeeID, "annual", 2024, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	req, err := svc.ApproveRequest(context.Background(), "lr-1", "mgr-1")
	require.NoError(t, err)
	require.Equal(t, StatusApproved, req.Status)
	require.Equal(t, "mgr-1", req.ApprovedBy)
	require.NotNil(t, req.ApprovedAt)
	require.Equal(t, approvedAt, *req.ApprovedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRequestRejectsNonPending(t *testing.T) {
	svc, mock := newTestService(t)
	created := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	approvedAt := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM leave_requests r JOIN employees e").
		WithArgs("lr-1").
		WillReturnRows(pgxmock.NewRows(requestCols).
			AddRow("lr-1", employeeID, "Amina Okafor", "annual", date(2024, 5, 6), date(2024, 5, 10), 5, "", StatusApproved, "mgr-1", &approvedAt, created))
	mock.ExpectRollback()

	_, err := svc.ApproveRequest(context.Background(), "lr-1", "mgr-2")
	require.ErrorIs(t, err, ErrNotPending)
	require.True(t, errors.Is(err, db.ErrInvalidState))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRequestMissing(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM leave_requests r JOIN employees e").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(requestCols))
	mock.ExpectRollback()

	_, err := svc.ApproveRequest(context.Background(), "missing", "mgr-1")
	require.ErrorIs(t, err, db.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRequestsBuildsFilter(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`WHERE 1=1 AND r.employee_id = \$1 AND r.status = \$2 ORDER BY r.start_date DESC, r.created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(employeeID, StatusPending, 25, 0).
		WillReturnRows(pgxmock.NewRows(requestCols))

	out, err := svc.ListRequests(context.Background(), RequestFilter{EmployeeID: employeeID, Status: StatusPending, Limit: 25})
	require.NoError(t, err)
	require.Empty(t, out)
	require.NotNil(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertBalanceValidates(t *testing.T) {
	svc, mock := newTestService(t)
	negative := decimal.NewFromInt(-2)

	_, err := svc.UpsertBalance(context.Background(), BalanceInput{
		EmployeeID: employeeID,
		LeaveType:  "sick",
		FiscalYear: 2024,
		TotalDays:  &negative,
	})
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.True(t, verr.Has("totalDays"))

	_, err = svc.UpsertBalance(context.Background(), BalanceInput{EmployeeID: employeeID, LeaveType: "sick", FiscalYear: 2024})
	verr, ok = validation.As(err)
	require.True(t, ok)
	require.Equal(t, "Total days is required", verr.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}
