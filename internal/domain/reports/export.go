package reports

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Employees"

var exportHeader = []any{"Employee code", "First name", "Last name", "Email", "Department", "Job grade", "Employment type", "Status", "Hire date", "Termination date"}

// ExportEmployeesXLSX writes every employee as one row of an XLSX workbook.
// Sensitive identifiers are never exported.
func (s *Service) ExportEmployeesXLSX(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.db.Query(ctx, `
    SELECT e.employee_code, e.first_name, e.last_name, e.email, COALESCE(d.name, ''), COALESCE(g.name, ''),
      e.employment_type, e.status, e.hire_date, e.termination_date
    FROM employees e
    LEFT JOIN departments d ON d.id = e.department_id
    LEFT JOIN job_grades g ON g.id = e.job_grade_id
    ORDER BY e.employee_code
  `)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("close workbook", "err", err)
		}
	}()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return 0, err
	}

	count := 0
	for rows.Next() {
		var code, first, last, email, department, grade, employmentType, status string
		var hired time.Time
		var terminated *time.Time
		if err := rows.Scan(&code, &first, &last, &email, &department, &grade, &employmentType, &status, &hired, &terminated); err != nil {
			return 0, err
		}
		termination := ""
		if terminated != nil {
			termination = terminated.Format(time.DateOnly)
		}
		record := []any{code, first, last, email, department, grade, employmentType, status, hired.Format(time.DateOnly), termination}
		cell, err := excelize.CoordinatesToCellName(1, count+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &record); err != nil {
			return 0, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if err := f.Write(w); err != nil {
		return 0, err
	}
	return count, nil
}
