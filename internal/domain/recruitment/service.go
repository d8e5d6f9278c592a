package recruitment

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/domain/validation"
	"hrportal/internal/platform/querier"
)

type Service struct {
	db    querier.Querier
	store *Store
}

func NewService(db querier.Querier) *Service {
	return &Service{db: db, store: NewStore(db)}
}

func (s *Service) CreatePosting(ctx context.Context, in PostingInput) (Posting, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	if in.Status == "" {
		in.Status = PostingOpen
	}
	verr := validation.Struct(in)
	if in.SalaryMin != nil && in.SalaryMin.IsNegative() {
		verr.Add("salaryMin", "Minimum salary cannot be negative")
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && in.SalaryMax.LessThan(*in.SalaryMin) {
		verr.Add("salaryMax", "Maximum salary cannot be below the minimum salary")
	}
	if err := verr.Err(); err != nil {
		return Posting{}, err
	}
	return s.store.InsertPosting(ctx, in)
}

func (s *Service) ListPostings(ctx context.Context, filter PostingFilter) ([]Posting, error) {
	return s.store.ListPostings(ctx, filter)
}

// UpdatePostingStatus moves a posting between states. Filled postings are final.
func (s *Service) UpdatePostingStatus(ctx context.Context, id string, in StatusInput) error {
	if err := validation.Struct(in).Err(); err != nil {
		return err
	}
	return querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		current, err := store.LockPostingStatus(ctx, id)
		if err != nil {
			return err
		}
		if current == PostingFilled && in.Status != PostingFilled {
			return ErrPostingFinalized
		}
		return store.SetPostingStatus(ctx, id, in.Status)
	})
}

// AddApplication records a candidate against an open posting.
func (s *Service) AddApplication(ctx context.Context, postingID string, in ApplicationInput) (Application, error) {
	in.CandidateName = strings.TrimSpace(in.CandidateName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validation.Struct(in).Err(); err != nil {
		return Application{}, err
	}
	var out Application
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		status, err := store.LockPostingStatus(ctx, postingID)
		if err != nil {
			return err
		}
		if status != PostingOpen {
			return ErrPostingNotOpen
		}
		app, err := store.InsertApplication(ctx, postingID, in)
		if err != nil {
			return err
		}
		out = app
		return nil
	})
	if err != nil {
		return Application{}, err
	}
	return out, nil
}

func (s *Service) ListApplications(ctx context.Context, postingID string) ([]Application, error) {
	return s.store.ListApplications(ctx, postingID)
}
