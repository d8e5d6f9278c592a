package benefits

import (
	"context"
	"time"

	"hrportal/internal/platform/db"
	"hrportal/internal/platform/querier"
)

var duplicateRules = []db.DuplicateRule{
	{Match: "employee_benefits_plan_employee", Message: "Employee is already enrolled in this plan."},
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) InsertPlan(ctx context.Context, in PlanInput) (Plan, error) {
	plan := Plan{
		Name:                 in.Name,
		BenefitType:          in.BenefitType,
		Provider:             in.Provider,
		Description:          in.Description,
		Cost:                 *in.Cost,
		EmployeeContribution: in.EmployeeContribution,
		Currency:             in.Currency,
		EffectiveDate:        in.EffectiveDate,
		EndDate:              in.EndDate,
		Status:               StatusActive,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO benefit_plans
      (name, benefit_type, provider, description, cost, employee_contribution, currency, effective_date, end_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id, created_at
  `, in.Name, in.BenefitType, querier.NullIfEmpty(in.Provider), querier.NullIfEmpty(in.Description), plan.Cost,
		plan.EmployeeContribution, in.Currency, in.EffectiveDate, in.EndDate, StatusActive).
		Scan(&plan.ID, &plan.CreatedAt)
	if err != nil {
		return Plan{}, db.Classify(err)
	}
	return plan, nil
}

func (s *Store) InsertEnrollments(ctx context.Context, planID string, employeeIDs []string, on time.Time, coverage string) ([]Enrollment, error) {
	out := make([]Enrollment, 0, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}
	values := make([][]any, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		values = append(values, []any{planID, id, on, coverage, StatusActive})
	}
	placeholders, args := querier.BulkValues(0, values)
	rows, err := s.DB.Query(ctx, `
    INSERT INTO employee_benefits (plan_id, employee_id, enrollment_date, coverage_level, status)
    VALUES `+placeholders+`
    RETURNING id, created_at
  `, args...)
	if err != nil {
		return nil, db.Classify(err, duplicateRules...)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		e := Enrollment{PlanID: planID, EmployeeID: employeeIDs[i], EnrollmentDate: on, CoverageLevel: coverage, Status: StatusActive}
		if err := rows.Scan(&e.ID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err, duplicateRules...)
	}
	return out, nil
}

func (s *Store) ListPlans(ctx context.Context, status string) ([]Plan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.name, p.benefit_type, COALESCE(p.provider, ''), COALESCE(p.description, ''), p.cost,
      p.employee_contribution, p.currency, p.effective_date, p.end_date, p.status, COUNT(b.id), p.created_at
    FROM benefit_plans p
    LEFT JOIN employee_benefits b ON b.plan_id = p.id AND b.status = 'active'
    WHERE ($1 = '' OR p.status = $1)
    GROUP BY p.id
    ORDER BY p.name
  `, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Plan{}
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.BenefitType, &p.Provider, &p.Description, &p.Cost, &p.EmployeeContribution,
			&p.Currency, &p.EffectiveDate, &p.EndDate, &p.Status, &p.Enrolled, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) PlanExists(ctx context.Context, id string) error {
	var exists bool
	if err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM benefit_plans WHERE id = $1)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return db.ErrNotFound
	}
	return nil
}

func (s *Store) ListEnrollments(ctx context.Context, planID string) ([]Enrollment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT b.id, b.plan_id, b.employee_id, e.first_name || ' ' || e.last_name, b.enrollment_date,
      b.coverage_level, b.status, b.created_at
    FROM employee_benefits b
    JOIN employees e ON e.id = b.employee_id
    WHERE b.plan_id = $1
    ORDER BY e.last_name, e.first_name
  `, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Enrollment{}
	for rows.Next() {
		var e Enrollment
		if err := rows.Scan(&e.ID, &e.PlanID, &e.EmployeeID, &e.EmployeeName, &e.EnrollmentDate, &e.CoverageLevel, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
