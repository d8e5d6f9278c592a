package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hrportal/internal/domain/validation"
)

type fallbackSpy struct {
	names []string
}

func (f *fallbackSpy) Fallback(name string) {
	f.names = append(f.names, name)
}

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface, *fallbackSpy) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	spy := &fallbackSpy{}
	svc := NewService(mock, spy)
	svc.now = func() time.Time { return time.Date(2024, 5, 14, 15, 4, 0, 0, time.UTC) }
	return svc, mock, spy
}

func countRows(n int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"count"}).AddRow(n)
}

func TestDashboardStatsZeroWhenCountFails(t *testing.T) {
	svc, mock, spy := newTestService(t)

	mock.ExpectQuery("SELECT id::text FROM employees LIMIT 1").
		WillReturnError(errors.New(`relation "employees" does not exist`))

	stats := svc.DashboardStats(context.Background())
	require.Equal(t, Stats{}, stats)
	require.Equal(t, []string{"employees_check"}, spy.names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardStatsFallsBackPerCount(t *testing.T) {
	svc, mock, spy := newTestService(t)
	today := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id::text FROM employees LIMIT 1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("e1"))
	mock.ExpectQuery("SELECT COUNT\\(1\\) FROM employees$").WillReturnRows(countRows(12))
	mock.ExpectQuery("FROM employees WHERE status = 'active'").WillReturnRows(countRows(9))
	mock.ExpectQuery("FROM departments").WillReturnRows(countRows(4))
	mock.ExpectQuery("FROM leave_requests WHERE status = 'pending'").WillReturnError(errors.New("timeout"))
	mock.ExpectQuery("FROM leave_requests WHERE status = 'approved'").WithArgs(today).WillReturnRows(countRows(2))
	mock.ExpectQuery("FROM job_postings").WillReturnRows(countRows(3))
	mock.ExpectQuery("FROM training_programs").WithArgs(today).WillReturnRows(countRows(1))
	mock.ExpectQuery("FROM benefit_plans").WillReturnRows(countRows(5))

	stats := svc.DashboardStats(context.Background())
	require.Equal(t, Stats{
		TotalEmployees:     12,
		ActiveEmployees:    9,
		Departments:        4,
		PendingLeave:       0,
		OnLeaveToday:       2,
		OpenPostings:       3,
		UpcomingTraining:   1,
		ActiveBenefitPlans: 5,
	}, stats)
	require.Equal(t, []string{"pending_leave"}, spy.names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardStatsEmptyEmployeesStillCounts(t *testing.T) {
	svc, mock, spy := newTestService(t)

	mock.ExpectQuery("SELECT id::text FROM employees LIMIT 1").WillReturnError(pgx.ErrNoRows)
	for i := 0; i < 8; i++ {
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(countRows(0))
	}

	require.Equal(t, Stats{}, svc.DashboardStats(context.Background()))
	require.Empty(t, spy.names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentActivitiesMergesAndMemoizesLabels(t *testing.T) {
	svc, mock, spy := newTestService(t)
	at := func(h int) time.Time { return time.Date(2024, 5, 14, h, 0, 0, 0, time.UTC) }

	mock.ExpectQuery("FROM employees").
		WithArgs(perSourceLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "department_id", "created_at"}).
			AddRow("e1", "Amina Okafor", "d1", at(9)).
			AddRow("e2", "Kofi Mensah", "d1", at(7)))
	mock.ExpectQuery("SELECT name FROM departments").
		WithArgs("d1").
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Engineering"))
	mock.ExpectQuery("FROM leave_requests").
		WithArgs(perSourceLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "employee_id", "leave_type", "status", "created_at"}).
			AddRow("lr1", "e1", "annual", "pending", at(10)))
	mock.ExpectQuery("SELECT employee_code FROM employees").
		WithArgs("e1").
		WillReturnRows(pgxmock.NewRows([]string{"employee_code"}).AddRow("EMP-001"))
	mock.ExpectQuery("FROM performance_reviews").
		WithArgs(perSourceLimit).
		WillReturnError(errors.New("permission denied"))

	out := svc.RecentActivities(context.Background(), 0)
	require.Len(t, out, 3)
	require.Equal(t, "lr1", out[0].EntityID)
	require.Equal(t, "EMP-001", out[0].Label)
	require.Equal(t, "e1", out[1].EntityID)
	require.Equal(t, "Engineering", out[1].Label)
	require.Equal(t, "Engineering", out[2].Label)
	require.Equal(t, []string{"recent_reviews"}, spy.names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentActivitiesTruncatesAndDegradesLabels(t *testing.T) {
	svc, mock, _ := newTestService(t)
	at := func(h int) time.Time { return time.Date(2024, 5, 14, h, 0, 0, 0, time.UTC) }

	mock.ExpectQuery("FROM employees").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "department_id", "created_at"}).
			AddRow("e1", "Amina Okafor", "", at(9)))
	mock.ExpectQuery("FROM leave_requests").
		WillReturnRows(pgxmock.NewRows([]string{"id", "employee_id", "leave_type", "status", "created_at"}).
			AddRow("lr1", "e9", "sick", "approved", at(11)))
	mock.ExpectQuery("SELECT employee_code FROM employees").
		WithArgs("e9").
		WillReturnError(errors.New("boom"))
	mock.ExpectQuery("FROM performance_reviews").
		WillReturnRows(pgxmock.NewRows([]string{"id", "employee_id", "review_period", "created_at"}))

	out := svc.RecentActivities(context.Background(), 1)
	require.Len(t, out, 1)
	require.Equal(t, "lr1", out[0].EntityID)
	require.Empty(t, out[0].Label)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHeadcountByDepartment(t *testing.T) {
	svc, mock, _ := newTestService(t)

	mock.ExpectQuery("LEFT JOIN departments").
		WillReturnRows(pgxmock.NewRows([]string{"name"}).
			AddRow("Design").AddRow("Design").AddRow("Engineering").AddRow("Engineering").AddRow("Engineering").AddRow("Finance"))

	chart, err := svc.HeadcountByDepartment(context.Background())
	require.NoError(t, err)
	require.Len(t, chart.Series, 3)
	require.Equal(t, 6, chart.Total)
	require.Equal(t, "Engineering", chart.Series[1].Name)
	require.Equal(t, 3, chart.Series[1].Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTurnoverRejectsInvertedWindow(t *testing.T) {
	svc, mock, _ := newTestService(t)

	_, err := svc.Turnover(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTurnoverDefaultsOnlyTheMissingEnd(t *testing.T) {
	svc, mock, _ := newTestService(t)
	today := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)
	counts := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"separations", "start", "end"}).AddRow(1, 10, 10)
	}

	mock.ExpectQuery("FILTER").WithArgs(from, today).WillReturnRows(counts())
	out, err := svc.Turnover(context.Background(), from, time.Time{})
	require.NoError(t, err)
	require.Equal(t, from, out.From)
	require.Equal(t, today, out.To)

	mock.ExpectQuery("FILTER").WithArgs(time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC), to).WillReturnRows(counts())
	out, err = svc.Turnover(context.Background(), time.Time{}, to)
	require.NoError(t, err)
	require.Equal(t, to, out.To)

	mock.ExpectQuery("FILTER").WithArgs(today.AddDate(-1, 0, 0), today).WillReturnRows(counts())
	_, err = svc.Turnover(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	_, err = svc.Turnover(context.Background(), time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), time.Time{})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTurnover(t *testing.T) {
	svc, mock, _ := newTestService(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FILTER").
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"separations", "start", "end"}).AddRow(5, 100, 100))

	out, err := svc.Turnover(context.Background(), from, to)
	require.NoError(t, err)
	require.Equal(t, 5.0, out.Rate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportEmployeesXLSX(t *testing.T) {
	svc, mock, _ := newTestService(t)
	hired := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM employees e").
		WillReturnRows(pgxmock.NewRows([]string{"code", "first", "last", "email", "department", "grade", "type", "status", "hire", "termination"}).
			AddRow("EMP-001", "Amina", "Okafor", "amina@example.com", "Engineering", "G2", "full_time", "active", hired, (*time.Time)(nil)))

	var buf bytes.Buffer
	n, err := svc.ExportEmployeesXLSX(context.Background(), &buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Employee code", rows[0][0])
	require.Equal(t, "EMP-001", rows[1][0])
	require.Equal(t, "2023-02-01", rows[1][8])
	require.NoError(t, mock.ExpectationsWereMet())
}
