package payroll

import (
	"context"
	"sort"
	"strings"

	"hrportal/internal/domain/validation"
	cryptoutil "hrportal/internal/platform/crypto"
	"hrportal/internal/platform/querier"
)

type Service struct {
	store *Store
}

func NewService(db querier.Querier, crypto *cryptoutil.Service) *Service {
	return &Service{store: NewStore(db, crypto)}
}

// NormalizeProfile trims text fields and defaults the currency.
func NormalizeProfile(in *ProfileInput) {
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.BankName = strings.TrimSpace(in.BankName)
	in.AccountNumber = strings.TrimSpace(in.AccountNumber)
	in.MobileProvider = strings.TrimSpace(in.MobileProvider)
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)
}

// CheckAmounts records negative money fields under prefix.
func CheckAmounts(verr *validation.Error, prefix string, in ProfileInput) {
	if in.BasicSalary != nil && in.BasicSalary.IsNegative() {
		verr.Add(prefix+"basicSalary", "Basic salary cannot be negative")
	}
	if in.Allowances.IsNegative() {
		verr.Add(prefix+"allowances", "Allowances cannot be negative")
	}
	if in.Deductions.IsNegative() {
		verr.Add(prefix+"deductions", "Deductions cannot be negative")
	}
}

func (s *Service) CreateProfile(ctx context.Context, employeeID string, in ProfileInput) (Profile, error) {
	NormalizeProfile(&in)
	verr := validation.Struct(in)
	CheckAmounts(verr, "", in)
	if err := verr.Err(); err != nil {
		return Profile{}, err
	}
	return s.store.CreateProfile(ctx, employeeID, in)
}

func (s *Service) CurrentProfile(ctx context.Context, employeeID string) (Profile, error) {
	return s.store.CurrentProfile(ctx, employeeID)
}

func (s *Service) ListProfiles(ctx context.Context, employeeID string) ([]Profile, error) {
	return s.store.ListProfiles(ctx, employeeID)
}

func (s *Service) Register(ctx context.Context) (Register, error) {
	rows, err := s.store.RegisterRows(ctx)
	if err != nil {
		return Register{}, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].EmployeeCode < rows[j].EmployeeCode })

	out := Register{Rows: rows}
	for i := range out.Rows {
		out.Rows[i].Totals = out.Rows[i].Profile.Totals()
		out.Totals = out.Totals.Add(out.Rows[i].Totals)
	}
	return out, nil
}
