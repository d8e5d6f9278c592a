package org

import (
	"context"
	"strings"

	"hrportal/internal/domain/validation"
)

const DefaultCurrency = "USD"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.store.ListDepartments(ctx)
}

func (s *Service) CreateDepartment(ctx context.Context, in DepartmentInput) (Department, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	if err := validation.Struct(in).Err(); err != nil {
		return Department{}, err
	}
	return s.store.CreateDepartment(ctx, in)
}

func (s *Service) UpdateDepartment(ctx context.Context, id string, patch DepartmentPatch) error {
	if err := validation.Struct(patch).Err(); err != nil {
		return err
	}
	return s.store.UpdateDepartment(ctx, id, patch)
}

func (s *Service) ListJobGrades(ctx context.Context) ([]JobGrade, error) {
	return s.store.ListJobGrades(ctx)
}

func (s *Service) CreateJobGrade(ctx context.Context, in JobGradeInput) (JobGrade, error) {
	verr := validation.Struct(in)
	if in.MinSalary != nil && in.MaxSalary != nil {
		if in.MinSalary.IsNegative() {
			verr.Add("minSalary", "Minimum salary cannot be negative")
		}
		if in.MaxSalary.LessThan(*in.MinSalary) {
			verr.Add("maxSalary", "Maximum salary cannot be less than minimum salary")
		}
	}
	if err := verr.Err(); err != nil {
		return JobGrade{}, err
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	return s.store.CreateJobGrade(ctx, in, currency)
}
