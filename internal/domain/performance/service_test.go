package performance

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"hrportal/internal/domain/validation"
	"hrportal/internal/platform/db"
)

const (
	employeeID = "3f0c7a52-8f65-4f4a-9a43-5c7a1d0c2b11"
	reviewerID = "8b2e4f10-1d2c-4c5e-9f0a-7a6b5c4d3e21"
)

var reviewCols = []string{"id", "employee_id", "employee_name", "reviewer_id", "review_period", "review_date", "ratings", "rating", "strengths", "improvements", "goals", "comments", "created_at"}

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewService(mock), mock
}

func sampleRatings() Ratings {
	return Ratings{JobKnowledge: 4, QualityOfWork: 4, Productivity: 3, Communication: 5, Teamwork: 4, Initiative: 3, Reliability: 4, Leadership: 5}
}

func TestCreateReviewStoresComputedRating(t *testing.T) {
	svc, mock := newTestService(t)
	created := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	reviewDate := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO performance_reviews").
		WithArgs(employeeID, reviewerID, "2024-H1", reviewDate, pgxmock.AnyArg(), 4.0, "Ownership", nil, nil, nil).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("pr-1", created))

	review, err := svc.CreateReview(context.Background(), ReviewInput{
		EmployeeID:   employeeID,
		ReviewerID:   reviewerID,
		ReviewPeriod: " 2024-H1 ",
		ReviewDate:   reviewDate,
		Ratings:      sampleRatings(),
		Strengths:    "Ownership",
	})
	require.NoError(t, err)
	require.Equal(t, 4.0, review.Rating)
	require.Equal(t, "pr-1", review.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	svc, mock := newTestService(t)
	ratings := sampleRatings()
	ratings.Teamwork = 6

	_, err := svc.CreateReview(context.Background(), ReviewInput{
		EmployeeID:   employeeID,
		ReviewerID:   reviewerID,
		ReviewPeriod: "2024-H1",
		ReviewDate:   time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		Ratings:      ratings,
	})
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.True(t, verr.Has("ratings.teamwork"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewRejectsSelfReview(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.CreateReview(context.Background(), ReviewInput{
		EmployeeID:   employeeID,
		ReviewerID:   employeeID,
		ReviewPeriod: "2024-H1",
		ReviewDate:   time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		Ratings:      sampleRatings(),
	})
	verr, ok := validation.As(err)
	require.True(t, ok)
	require.True(t, verr.Has("reviewerId"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReviewDecodesRatings(t *testing.T) {
	svc, mock := newTestService(t)
	created := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM performance_reviews r").
		WithArgs("pr-1").
		WillReturnRows(pgxmock.NewRows(reviewCols).AddRow(
			"pr-1", employeeID, "Amina Okafor", reviewerID, "2024-H1", created,
			[]byte(`{"jobKnowledge":4,"teamwork":5}`), 4.5, "", "", "", "", created))

	review, err := svc.GetReview(context.Background(), "pr-1")
	require.NoError(t, err)
	require.Equal(t, 5, review.Ratings.Teamwork)
	require.Equal(t, 4.5, review.Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReviewNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("FROM performance_reviews r").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(reviewCols))

	_, err := svc.GetReview(context.Background(), "missing")
	require.ErrorIs(t, err, db.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
