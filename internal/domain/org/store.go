package org

import (
	"context"

	"hrportal/internal/platform/db"
	"hrportal/internal/platform/querier"
)

var duplicateRules = []db.DuplicateRule{
	{Match: "departments_name", Message: "A department with this name already exists."},
	{Match: "departments_code", Message: "A department with this code already exists."},
	{Match: "job_grades_code", Message: "A job grade with this code already exists."},
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.id, d.name, COALESCE(d.code, ''), COALESCE(d.description, ''), COALESCE(d.manager_id::text, ''),
           COUNT(e.id) FILTER (WHERE e.status NOT IN ('terminated','retired')),
           d.created_at, d.updated_at
    FROM departments d
    LEFT JOIN employees e ON e.department_id = d.id
    GROUP BY d.id
    ORDER BY d.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Department{}
	for rows.Next() {
		var dep Department
		if err := rows.Scan(&dep.ID, &dep.Name, &dep.Code, &dep.Description, &dep.ManagerID, &dep.Headcount, &dep.CreatedAt, &dep.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, in DepartmentInput) (Department, error) {
	dep := Department{Name: in.Name, Code: in.Code, Description: in.Description, ManagerID: in.ManagerID}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, code, description, manager_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id, created_at, updated_at
  `, in.Name, querier.NullIfEmpty(in.Code), querier.NullIfEmpty(in.Description), querier.NullIfEmpty(in.ManagerID)).
		Scan(&dep.ID, &dep.CreatedAt, &dep.UpdatedAt)
	if err != nil {
		return Department{}, db.Classify(err, duplicateRules...)
	}
	return dep, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, id string, patch DepartmentPatch) error {
	var p querier.Patch
	if patch.Name != nil {
		p.Set("name", *patch.Name)
	}
	if patch.Code != nil {
		p.Set("code", querier.NullIfEmpty(*patch.Code))
	}
	if patch.Description != nil {
		p.Set("description", querier.NullIfEmpty(*patch.Description))
	}
	if patch.ManagerID != nil {
		p.Set("manager_id", querier.NullIfEmpty(*patch.ManagerID))
	}
	if p.Empty() {
		return nil
	}
	key := p.Arg(id)
	tag, err := s.DB.Exec(ctx, "UPDATE departments SET "+p.Clause()+", updated_at = now() WHERE id = "+key, p.Args...)
	if err != nil {
		return db.Classify(err, duplicateRules...)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (s *Store) ListJobGrades(ctx context.Context) ([]JobGrade, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, code, name, level, min_salary, max_salary, currency, created_at
    FROM job_grades
    ORDER BY level, code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []JobGrade{}
	for rows.Next() {
		var grade JobGrade
		if err := rows.Scan(&grade.ID, &grade.Code, &grade.Name, &grade.Level, &grade.MinSalary, &grade.MaxSalary, &grade.Currency, &grade.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, grade)
	}
	return out, rows.Err()
}

func (s *Store) CreateJobGrade(ctx context.Context, in JobGradeInput, currency string) (JobGrade, error) {
	grade := JobGrade{Code: in.Code, Name: in.Name, Level: in.Level, MinSalary: *in.MinSalary, MaxSalary: *in.MaxSalary, Currency: currency}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_grades (code, name, level, min_salary, max_salary, currency)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id, created_at
  `, in.Code, in.Name, in.Level, grade.MinSalary, grade.MaxSalary, currency).Scan(&grade.ID, &grade.CreatedAt)
	if err != nil {
		return JobGrade{}, db.Classify(err, duplicateRules...)
	}
	return grade, nil
}
