package compliance

import (
	"context"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

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

func ValidateReport(in ReportInput) error {
	return validation.Struct(in).Err()
}

// CreateReport writes the report and its line items in one transaction.
func (s *Service) CreateReport(ctx context.Context, in ReportInput) (Report, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Authority = strings.TrimSpace(in.Authority)
	for i := range in.Items {
		in.Items[i].Description = strings.TrimSpace(in.Items[i].Description)
	}
	if err := ValidateReport(in); err != nil {
		return Report{}, err
	}

	var out Report
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		report, err := store.InsertReport(ctx, in)
		if err != nil {
			return err
		}
		items, err := store.InsertItems(ctx, report.ID, in.Items)
		if err != nil {
			return err
		}
		report.Items = items
		report.Total = sumItems(items)
		out = report
		return nil
	})
	if err != nil {
		return Report{}, err
	}
	return out, nil
}

func (s *Service) ListReports(ctx context.Context, filter ReportFilter) ([]Report, error) {
	return s.store.ListReports(ctx, filter)
}

func (s *Service) GetReport(ctx context.Context, id string) (Report, error) {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return Report{}, err
	}
	items, err := s.store.ListItems(ctx, id)
	if err != nil {
		return Report{}, err
	}
	report.Items = items
	return report, nil
}

// MarkSubmitted records the filing reference of a draft report.
func (s *Service) MarkSubmitted(ctx context.Context, id string, in SubmitInput) (Report, error) {
	in.ReferenceNumber = strings.TrimSpace(in.ReferenceNumber)
	if err := validation.Struct(in).Err(); err != nil {
		return Report{}, err
	}
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		status, err := store.LockStatus(ctx, id)
		if err != nil {
			return err
		}
		if status != StatusDraft {
			return ErrAlreadySubmitted
		}
		_, err = store.MarkSubmitted(ctx, id, in.ReferenceNumber)
		return err
	})
	if err != nil {
		return Report{}, err
	}
	return s.GetReport(ctx, id)
}

func (s *Service) RenderPDF(ctx context.Context, id string, w io.Writer) error {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return err
	}
	return RenderPDF(w, report)
}

func sumItems(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}
