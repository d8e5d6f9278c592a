package recruitment

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"hrportal/internal/domain/validation"
	"hrportal/internal/platform/db"
)

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewService(mock), mock
}

func TestCreatePostingDefaultsToOpen(t *testing.T) {
	svc, mock := newTestService(t)
	posted := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO job_postings").
		WithArgs("Backend Engineer", nil, nil, nil, nil, "full_time", "Lagos", pgxmock.AnyArg(), pgxmock.AnyArg(), PostingOpen, posted, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("jp-1", created))

	p, err := svc.CreatePosting(context.Background(), PostingInput{
		Title:          " Backend Engineer ",
		EmploymentType: "full_time",
		Location:       "Lagos",
		PostedDate:     posted,
	})
	require.NoError(t, err)
	require.Equal(t, PostingOpen, p.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePostingRejectsInvertedSalaryRange(t *testing.T) {
	svc, mock := newTestService(t)
	lo := decimal.NewFromInt(5000)
	hi := decimal.NewFromInt(4000)

	_, err := svc.CreatePosting(context.Background(), PostingInput{
		Title:          "Analyst",
		EmploymentType: "contract",
		PostedDate:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		SalaryMin:      &lo,
		SalaryMax:      &hi,
	})
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.True(t, verr.Has("salaryMax"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddApplicationRequiresOpenPosting(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM job_postings").
		WithArgs("jp-1").
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(PostingClosed))
	mock.ExpectRollback()

	_, err := svc.AddApplication(context.Background(), "jp-1", ApplicationInput{CandidateName: "Tobi Adeyemi", Email: "tobi@example.com"})
	require.ErrorIs(t, err, ErrPostingNotOpen)
	require.ErrorIs(t, err, db.ErrInvalidState)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddApplicationInsertsCandidate(t *testing.T) {
	svc, mock := newTestService(t)
	applied := time.Date(2024, 7, 3, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM job_postings").
		WithArgs("jp-1").
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(PostingOpen))
	mock.ExpectQuery("INSERT INTO job_applications").
		WithArgs("jp-1", "Tobi Adeyemi", "tobi@example.com", nil, nil, ApplicationApplied).
		WillReturnRows(pgxmock.NewRows([]string{"id", "applied_at"}).AddRow("ja-1", applied))
	mock.ExpectCommit()

	app, err := svc.AddApplication(context.Background(), "jp-1", ApplicationInput{CandidateName: "Tobi Adeyemi", Email: " Tobi@Example.com "})
	require.NoError(t, err)
	require.Equal(t, "ja-1", app.ID)
	require.Equal(t, applied, app.AppliedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddApplicationValidatesEmail(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.AddApplication(context.Background(), "jp-1", ApplicationInput{CandidateName: "Tobi", Email: "not-an-email"})
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.Equal(t, "Email must be a valid email address", verr.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePostingStatusFilledIsFinal(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM job_postings").
		WithArgs("jp-1").
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(PostingFilled))
	mock.ExpectRollback()

	err := svc.UpdatePostingStatus(context.Background(), "jp-1", StatusInput{Status: PostingOpen})
	require.ErrorIs(t, err, ErrPostingFinalized)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePostingStatusCloses(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM job_postings").
		WithArgs("jp-1").
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(PostingOpen))
	mock.ExpectExec("UPDATE job_postings SET status").
		WithArgs("jp-1", PostingClosed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, svc.UpdatePostingStatus(context.Background(), "jp-1", StatusInput{Status: PostingClosed}))
	require.NoError(t, mock.ExpectationsWereMet())
}
