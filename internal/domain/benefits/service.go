package benefits

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

// Created is a new plan together with the enrollments written alongside it.
type Created struct {
	Plan        Plan         `json:"plan"`
	Enrollments []Enrollment `json:"enrollments"`
}

func ValidatePlan(in PlanInput) error {
	verr := validation.Struct(in)
	if in.Cost != nil && in.Cost.IsNegative() {
		verr.Add("cost", "Cost cannot be negative")
	}
	if in.EmployeeContribution.IsNegative() {
		verr.Add("employeeContribution", "Employee contribution cannot be negative")
	}
	if in.Cost != nil && in.EmployeeContribution.GreaterThan(*in.Cost) {
		verr.Add("employeeContribution", "Employee contribution cannot exceed the plan cost")
	}
	return verr.Err()
}

// CreatePlan writes the plan and its initial enrollments in one transaction.
// Initial enrollments start on the plan's effective date.
func (s *Service) CreatePlan(ctx context.Context, in PlanInput) (Created, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Provider = strings.TrimSpace(in.Provider)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	if err := ValidatePlan(in); err != nil {
		return Created{}, err
	}

	var out Created
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		plan, err := store.InsertPlan(ctx, in)
		if err != nil {
			return err
		}
		enrollments, err := store.InsertEnrollments(ctx, plan.ID, querier.UniqueIDs(in.EmployeeIDs), in.EffectiveDate, CoverageEmployee)
		if err != nil {
			return err
		}
		plan.Enrolled = len(enrollments)
		out = Created{Plan: plan, Enrollments: enrollments}
		return nil
	})
	if err != nil {
		return Created{}, err
	}
	return out, nil
}

func (s *Service) ListPlans(ctx context.Context, status string) ([]Plan, error) {
	return s.store.ListPlans(ctx, status)
}

func (s *Service) EnrollEmployees(ctx context.Context, planID string, in EnrollmentInput) ([]Enrollment, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	if in.CoverageLevel == "" {
		in.CoverageLevel = CoverageEmployee
	}
	var out []Enrollment
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		if err := store.PlanExists(ctx, planID); err != nil {
			return err
		}
		enrollments, err := store.InsertEnrollments(ctx, planID, querier.UniqueIDs(in.EmployeeIDs), in.EnrollmentDate, in.CoverageLevel)
		if err != nil {
			return err
		}
		out = enrollments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ListEnrollments(ctx context.Context, planID string) ([]Enrollment, error) {
	return s.store.ListEnrollments(ctx, planID)
}
