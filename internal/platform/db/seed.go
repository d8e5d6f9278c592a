package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedDepartment struct {
	Name string
	Code string
}

type seedJobGrade struct {
	Code      string
	Name      string
	Level     int
	MinSalary string
	MaxSalary string
}

var referenceDepartments = []seedDepartment{
	{Name: "Human Resources", Code: "HR"},
	{Name: "Finance", Code: "FIN"},
	{Name: "Engineering", Code: "ENG"},
	{Name: "Operations", Code: "OPS"},
}

var referenceJobGrades = []seedJobGrade{
	{Code: "G1", Name: "Associate", Level: 1, MinSalary: "20000.00", MaxSalary: "35000.00"},
	{Code: "G2", Name: "Officer", Level: 2, MinSalary: "35000.00", MaxSalary: "55000.00"},
	{Code: "G3", Name: "Senior Officer", Level: 3, MinSalary: "55000.00", MaxSalary: "80000.00"},
	{Code: "G4", Name: "Manager", Level: 4, MinSalary: "80000.00", MaxSalary: "120000.00"},
}

// Seed inserts reference departments and job grades. Existing rows are left
// untouched so the seed can run on every start.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	for _, dep := range referenceDepartments {
		if _, err := pool.Exec(ctx, `
      INSERT INTO departments (name, code)
      VALUES ($1, $2)
      ON CONFLICT DO NOTHING
    `, dep.Name, dep.Code); err != nil {
			return fmt.Errorf("seed department %s: %w", dep.Code, err)
		}
	}
	for _, grade := range referenceJobGrades {
		if _, err := pool.Exec(ctx, `
      INSERT INTO job_grades (code, name, level, min_salary, max_salary)
      VALUES ($1, $2, $3, $4::numeric, $5::numeric)
      ON CONFLICT DO NOTHING
    `, grade.Code, grade.Name, grade.Level, grade.MinSalary, grade.MaxSalary); err != nil {
			return fmt.Errorf("seed job grade %s: %w", grade.Code, err)
		}
	}
	slog.Info("reference data seeded", "departments", len(referenceDepartments), "jobGrades", len(referenceJobGrades))
	return nil
}
