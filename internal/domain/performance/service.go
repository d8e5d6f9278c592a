package performance

import (
	"context"
	"strings"

	"hrportal/internal/domain/validation"
	"hrportal/internal/platform/querier"
)

type Service struct {
	store *Store
}

func NewService(db querier.Querier) *Service {
	return &Service{store: NewStore(db)}
}

func (s *Service) CreateReview(ctx context.Context, in ReviewInput) (Review, error) {
	in.ReviewPeriod = strings.TrimSpace(in.ReviewPeriod)
	in.Strengths = strings.TrimSpace(in.Strengths)
	in.Improvements = strings.TrimSpace(in.Improvements)
	in.Goals = strings.TrimSpace(in.Goals)
	in.Comments = strings.TrimSpace(in.Comments)

	verr := validation.Struct(in)
	if in.EmployeeID != "" && in.EmployeeID == in.ReviewerID {
		verr.Add("reviewerId", "Reviewer cannot be the employee under review")
	}
	if err := verr.Err(); err != nil {
		return Review{}, err
	}
	return s.store.Insert(ctx, in, OverallRating(in.Ratings.Values()))
}

func (s *Service) GetReview(ctx context.Context, id string) (Review, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListReviews(ctx context.Context, filter ReviewFilter) ([]Review, error) {
	return s.store.List(ctx, filter)
}
