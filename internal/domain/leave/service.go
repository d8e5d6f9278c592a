package leave

import (
	"context"
	"log/slog"
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

// ValidateRequest checks a submission without touching the database.
func ValidateRequest(in RequestInput) error {
	verr := validation.Struct(in)
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() {
		if _, err := CalculateDays(in.StartDate, in.EndDate); err != nil {
			verr.Add("endDate", MessageEndBeforeStart)
		}
	}
	return verr.Err()
}

// SubmitRequest stores a pending request. The day count is always derived
// from the dates, never taken from the caller.
func (s *Service) SubmitRequest(ctx context.Context, in RequestInput) (Request, error) {
	in.Reason = strings.TrimSpace(in.Reason)
	if err := ValidateRequest(in); err != nil {
		return Request{}, err
	}
	days, err := CalculateDays(in.StartDate, in.EndDate)
	if err != nil {
		return Request{}, err
	}
	return s.store.InsertRequest(ctx, in, days)
}

func (s *Service) ListRequests(ctx context.Context, filter RequestFilter) ([]Request, error) {
	return s.store.ListRequests(ctx, filter)
}

// ApproveRequest moves a pending request to approved, stamps the approver
// and charges the days against the balance of the start date's fiscal year.
func (s *Service) ApproveRequest(ctx context.Context, id, approver string) (Request, error) {
	var out Request
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		req, err := store.GetRequestForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.Status != StatusPending {
			return ErrNotPending
		}
		approvedAt, err := store.MarkApproved(ctx, id, approver)
		if err != nil {
			return err
		}
		charged, err := store.ConsumeBalance(ctx, req.EmployeeID, req.LeaveType, FiscalYear(req.StartDate), req.Days)
		if err != nil {
			return err
		}
		if !charged {
			slog.Warn("approved leave has no balance row", "requestId", id, "employeeId", req.EmployeeID, "leaveType", req.LeaveType)
		}
		req.Status = StatusApproved
		req.ApprovedBy = approver
		req.ApprovedAt = &approvedAt
		out = req
		return nil
	})
	if err != nil {
		return Request{}, err
	}
	return out, nil
}

func (s *Service) ListBalances(ctx context.Context, employeeID string, fiscalYear int) ([]Balance, error) {
	return s.store.ListBalances(ctx, employeeID, fiscalYear)
}

func (s *Service) UpsertBalance(ctx context.Context, in BalanceInput) (Balance, error) {
	verr := validation.Struct(in)
	if in.TotalDays != nil && in.TotalDays.IsNegative() {
		verr.Add("totalDays", "Total days cannot be negative")
	}
	if in.UsedDays.IsNegative() {
		verr.Add("usedDays", "Used days cannot be negative")
	}
	if err := verr.Err(); err != nil {
		return Balance{}, err
	}
	return s.store.UpsertBalance(ctx, in)
}
