package performance

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/db"
	"hrportal/internal/platform/querier"
)

const reviewSelect = `
  SELECT r.id, r.employee_id, e.first_name || ' ' || e.last_name, r.reviewer_id, r.review_period, r.review_date,
    r.ratings, r.rating, COALESCE(r.strengths, ''), COALESCE(r.improvements, ''), COALESCE(r.goals, ''),
    COALESCE(r.comments, ''), r.created_at
  FROM performance_reviews r
  JOIN employees e ON e.id = r.employee_id`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, in ReviewInput, rating float64) (Review, error) {
	ratingsJSON, err := json.Marshal(in.Ratings)
	if err != nil {
		return Review{}, err
	}
	review := Review{
		EmployeeID:   in.EmployeeID,
		ReviewerID:   in.ReviewerID,
		ReviewPeriod: in.ReviewPeriod,
		ReviewDate:   in.ReviewDate,
		Ratings:      in.Ratings,
		Rating:       rating,
		Strengths:    in.Strengths,
		Improvements: in.Improvements,
		Goals:        in.Goals,
		Comments:     in.Comments,
	}
	err = s.DB.QueryRow(ctx, `
    INSERT INTO performance_reviews
      (employee_id, reviewer_id, review_period, review_date, ratings, rating, strengths, improvements, goals, comments)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id, created_at
  `, in.EmployeeID, in.ReviewerID, in.ReviewPeriod, in.ReviewDate, ratingsJSON, rating,
		querier.NullIfEmpty(in.Strengths), querier.NullIfEmpty(in.Improvements),
		querier.NullIfEmpty(in.Goals), querier.NullIfEmpty(in.Comments)).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return Review{}, db.Classify(err)
	}
	return review, nil
}

func (s *Store) Get(ctx context.Context, id string) (Review, error) {
	review, err := scanReview(s.DB.QueryRow(ctx, reviewSelect+" WHERE r.id = $1", id))
	if err != nil {
		return Review{}, db.Classify(err)
	}
	return review, nil
}

func (s *Store) List(ctx context.Context, filter ReviewFilter) ([]Review, error) {
	query := reviewSelect + " WHERE 1=1"
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += " AND r.employee_id = $" + strconv.Itoa(len(args))
	}
	if filter.ReviewerID != "" {
		args = append(args, filter.ReviewerID)
		query += " AND r.reviewer_id = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY r.review_date DESC, r.created_at DESC LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, review)
	}
	return out, rows.Err()
}

func scanReview(row pgx.Row) (Review, error) {
	var review Review
	var ratingsJSON []byte
	if err := row.Scan(&review.ID, &review.EmployeeID, &review.EmployeeName, &review.ReviewerID, &review.ReviewPeriod,
		&review.ReviewDate, &ratingsJSON, &review.Rating, &review.Strengths, &review.Improvements, &review.Goals,
		&review.Comments, &review.CreatedAt); err != nil {
		return Review{}, err
	}
	if len(ratingsJSON) > 0 {
		if err := json.Unmarshal(ratingsJSON, &review.Ratings); err != nil {
			return Review{}, err
		}
	}
	return review, nil
}
