package employee

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/db"
	"hrportal/internal/platform/querier"
)

const employeeColumns = `e.id, e.employee_code, e.first_name, COALESCE(e.middle_name, ''), e.last_name, e.email,
  COALESCE(e.phone, ''), e.date_of_birth, COALESCE(e.gender, ''),
  COALESCE(e.national_id, ''), COALESCE(e.tax_id, ''), COALESCE(e.social_security_number, ''),
  e.employment_type, e.status,
  COALESCE(e.department_id::text, ''), COALESCE(d.name, ''), COALESCE(e.job_grade_id::text, ''), COALESCE(e.manager_id::text, ''),
  e.hire_date, e.termination_date, e.created_at, e.updated_at`

const employeeFrom = ` FROM employees e LEFT JOIN departments d ON d.id = e.department_id`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) InsertEmployee(ctx context.Context, in CreateInput) (Employee, error) {
	emp := Employee{
		EmployeeCode:         in.EmployeeCode,
		FirstName:            in.FirstName,
		MiddleName:           in.MiddleName,
		LastName:             in.LastName,
		Email:                in.Email,
		Phone:                in.Phone,
		DateOfBirth:          in.DateOfBirth,
		Gender:               in.Gender,
		NationalID:           in.NationalID,
		TaxID:                in.TaxID,
		SocialSecurityNumber: in.SocialSecurityNumber,
		EmploymentType:       in.EmploymentType,
		Status:               in.Status,
		DepartmentID:         in.DepartmentID,
		JobGradeID:           in.JobGradeID,
		ManagerID:            in.ManagerID,
		HireDate:             in.HireDate,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_code, first_name, middle_name, last_name, email, phone, date_of_birth, gender,
      national_id, tax_id, social_security_number, employment_type, status, department_id, job_grade_id, manager_id, hire_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
    RETURNING id, created_at, updated_at
  `, in.EmployeeCode, in.FirstName, querier.NullIfEmpty(in.MiddleName), in.LastName, in.Email, querier.NullIfEmpty(in.Phone),
		in.DateOfBirth, querier.NullIfEmpty(in.Gender),
		querier.NullIfEmpty(in.NationalID), querier.NullIfEmpty(in.TaxID), querier.NullIfEmpty(in.SocialSecurityNumber),
		in.EmploymentType, in.Status,
		querier.NullIfEmpty(in.DepartmentID), querier.NullIfEmpty(in.JobGradeID), querier.NullIfEmpty(in.ManagerID), in.HireDate).
		Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return Employee{}, db.Classify(err, duplicateRules...)
	}
	return emp, nil
}

// InsertContacts writes all contacts in one statement.
func (s *Store) InsertContacts(ctx context.Context, employeeID string, contacts []ContactInput) ([]Contact, error) {
	out := make([]Contact, 0, len(contacts))
	if len(contacts) == 0 {
		return out, nil
	}
	values := make([][]any, 0, len(contacts))
	for _, c := range contacts {
		values = append(values, []any{employeeID, c.ContactType, c.FullName, querier.NullIfEmpty(c.Relationship),
			c.Phone, querier.NullIfEmpty(c.Email), querier.NullIfEmpty(c.Address)})
	}
	placeholders, args := querier.BulkValues(0, values)
	rows, err := s.DB.Query(ctx, `
    INSERT INTO employee_contacts (employee_id, contact_type, full_name, relationship, phone, email, address)
    VALUES `+placeholders+`
    RETURNING id, created_at
  `, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		c := contacts[i]
		contact := Contact{EmployeeID: employeeID, ContactType: c.ContactType, FullName: c.FullName, Relationship: c.Relationship,
			Phone: c.Phone, Email: c.Email, Address: c.Address}
		if err := rows.Scan(&contact.ID, &contact.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	return out, nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+employeeFrom+" WHERE e.id = $1", id)
	emp, err := scanEmployee(row)
	if err != nil {
		return Employee{}, db.Classify(err)
	}
	return emp, nil
}

// LockEmployee confirms the employee exists and holds its row until the transaction ends.
func (s *Store) LockEmployee(ctx context.Context, id string) (string, error) {
	var status string
	if err := s.DB.QueryRow(ctx, "SELECT status FROM employees WHERE id = $1 FOR UPDATE", id).Scan(&status); err != nil {
		return "", db.Classify(err)
	}
	return status, nil
}

func (s *Store) ListEmployees(ctx context.Context, filter Filter) ([]Employee, error) {
	where, args := filterClause(filter)
	query := "SELECT " + employeeColumns + employeeFrom + where +
		" ORDER BY e.last_name, e.first_name LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) CountEmployees(ctx context.Context, filter Filter) (int, error) {
	where, args := filterClause(filter)
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1)"+employeeFrom+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, patch Patch) error {
	var p querier.Patch
	setText := func(column string, value *string, nullable bool) {
		if value == nil {
			return
		}
		if nullable {
			p.Set(column, querier.NullIfEmpty(strings.TrimSpace(*value)))
			return
		}
		p.Set(column, strings.TrimSpace(*value))
	}
	setText("first_name", patch.FirstName, false)
	setText("middle_name", patch.MiddleName, true)
	setText("last_name", patch.LastName, false)
	setText("email", patch.Email, false)
	setText("phone", patch.Phone, true)
	setText("gender", patch.Gender, true)
	setText("national_id", patch.NationalID, true)
	setText("tax_id", patch.TaxID, true)
	setText("social_security_number", patch.SocialSecurityNumber, true)
	setText("employment_type", patch.EmploymentType, false)
	setText("status", patch.Status, false)
	setText("department_id", patch.DepartmentID, true)
	setText("job_grade_id", patch.JobGradeID, true)
	setText("manager_id", patch.ManagerID, true)
	if patch.DateOfBirth != nil {
		p.Set("date_of_birth", *patch.DateOfBirth)
	}
	if patch.HireDate != nil {
		p.Set("hire_date", *patch.HireDate)
	}
	if patch.TerminationDate != nil {
		p.Set("termination_date", *patch.TerminationDate)
	}
	if p.Empty() {
		return nil
	}

	key := p.Arg(id)
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET "+p.Clause()+", updated_at = now() WHERE id = "+key, p.Args...)
	if err != nil {
		return db.Classify(err, duplicateRules...)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (s *Store) Deactivate(ctx context.Context, id string, on time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET status = $2, termination_date = $3, updated_at = now()
    WHERE id = $1 AND status NOT IN ($2, $4)
  `, id, StatusTerminated, on, StatusRetired)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return db.ErrNotFound
	}
	return ErrAlreadyInactive
}

func (s *Store) ListContacts(ctx context.Context, employeeID string) ([]Contact, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, contact_type, full_name, COALESCE(relationship, ''), phone, COALESCE(email, ''), COALESCE(address, ''), created_at
    FROM employee_contacts
    WHERE employee_id = $1
    ORDER BY contact_type, created_at
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Contact{}
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.ContactType, &c.FullName, &c.Relationship, &c.Phone, &c.Email, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) DeleteContacts(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM employee_contacts WHERE employee_id = $1", employeeID)
	return err
}

func filterClause(filter Filter) (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := strconv.Itoa(len(args))
		clause += " AND (LOWER(e.first_name || ' ' || e.last_name) LIKE $" + n + " OR LOWER(e.email) LIKE $" + n + " OR LOWER(e.employee_code) LIKE $" + n + ")"
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clause += " AND e.status = $" + strconv.Itoa(len(args))
	}
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		clause += " AND e.department_id = $" + strconv.Itoa(len(args))
	}
	if filter.EmploymentType != "" {
		args = append(args, filter.EmploymentType)
		clause += " AND e.employment_type = $" + strconv.Itoa(len(args))
	}
	return clause, args
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FirstName, &emp.MiddleName, &emp.LastName, &emp.Email,
		&emp.Phone, &emp.DateOfBirth, &emp.Gender,
		&emp.NationalID, &emp.TaxID, &emp.SocialSecurityNumber,
		&emp.EmploymentType, &emp.Status,
		&emp.DepartmentID, &emp.DepartmentName, &emp.JobGradeID, &emp.ManagerID,
		&emp.HireDate, &emp.TerminationDate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}
