package reports

import (
	"context"
	"time"

	"hrportal/internal/domain/analytics"
	"hrportal/internal/domain/validation"
)

// HeadcountByDepartment groups current staff by department name.
func (s *Service) HeadcountByDepartment(ctx context.Context) (Chart, error) {
	names, err := s.column(ctx, `
    SELECT COALESCE(d.name, '')
    FROM employees e
    LEFT JOIN departments d ON d.id = e.department_id
    WHERE e.status NOT IN ('terminated', 'retired')
    ORDER BY d.name NULLS LAST
  `)
	if err != nil {
		return Chart{}, err
	}
	return newChart(analytics.GroupCount(names, identity)), nil
}

func (s *Service) StatusDistribution(ctx context.Context) (Chart, error) {
	statuses, err := s.column(ctx, "SELECT status FROM employees ORDER BY created_at")
	if err != nil {
		return Chart{}, err
	}
	return newChart(analytics.GroupCount(statuses, identity)), nil
}

// Turnover computes separations over [from, to] against the headcount at
// both ends of the window. A missing end defaults to today and a missing
// start to one year before the end.
func (s *Service) Turnover(ctx context.Context, from, to time.Time) (Turnover, error) {
	if to.IsZero() {
		to = s.today()
	}
	if from.IsZero() {
		from = to.AddDate(-1, 0, 0)
	}
	if to.Before(from) {
		verr := &validation.Error{}
		verr.Add("to", "End of the period cannot be before its start")
		return Turnover{}, verr
	}
	out := Turnover{From: from, To: to}
	err := s.db.QueryRow(ctx, `
    SELECT
      COUNT(1) FILTER (WHERE termination_date BETWEEN $1 AND $2),
      COUNT(1) FILTER (WHERE hire_date < $1 AND (termination_date IS NULL OR termination_date >= $1)),
      COUNT(1) FILTER (WHERE hire_date <= $2 AND (termination_date IS NULL OR termination_date > $2))
    FROM employees
  `, from, to).Scan(&out.Separations, &out.HeadcountStart, &out.HeadcountEnd)
	if err != nil {
		return Turnover{}, err
	}
	out.Rate = analytics.TurnoverRate(out.Separations, out.HeadcountStart, out.HeadcountEnd)
	return out, nil
}

func (s *Service) column(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func identity(s string) string { return s }
