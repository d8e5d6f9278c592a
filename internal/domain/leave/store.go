package leave

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/db"
	"hrportal/internal/platform/querier"
)

const requestColumns = `r.id, r.employee_id, e.first_name || ' ' || e.last_name, r.leave_type, r.start_date, r.end_date, r.days,
  COALESCE(r.reason, ''), r.status, COALESCE(r.approved_by, ''), r.approved_at, r.created_at`

const requestFrom = ` FROM leave_requests r JOIN employees e ON e.id = r.employee_id`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) InsertRequest(ctx context.Context, in RequestInput, days int) (Request, error) {
	req := Request{
		EmployeeID: in.EmployeeID,
		LeaveType:  in.LeaveType,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Days:       days,
		Reason:     in.Reason,
		Status:     StatusPending,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, days, reason, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, created_at
  `, in.EmployeeID, in.LeaveType, in.StartDate, in.EndDate, days, querier.NullIfEmpty(in.Reason), StatusPending).
		Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return Request{}, db.Classify(err)
	}
	return req, nil
}

func (s *Store) GetRequestForUpdate(ctx context.Context, id string) (Request, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+requestColumns+requestFrom+" WHERE r.id = $1 FOR UPDATE OF r", id)
	req, err := scanRequest(row)
	if err != nil {
		return Request{}, db.Classify(err)
	}
	return req, nil
}

func (s *Store) MarkApproved(ctx context.Context, id, approver string) (time.Time, error) {
	var approvedAt time.Time
	err := s.DB.QueryRow(ctx, `
    UPDATE leave_requests
    SET status = $2, approved_by = $3, approved_at = now()
    WHERE id = $1
    RETURNING approved_at
  `, id, StatusApproved, approver).Scan(&approvedAt)
	if err != nil {
		return time.Time{}, db.Classify(err)
	}
	return approvedAt, nil
}

// ConsumeBalance adds days to the used total of the matching balance row.
// It reports false when no balance row exists for that year.
func (s *Store) ConsumeBalance(ctx context.Context, employeeID, leaveType string, fiscalYear, days int) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_balances
    SET used_days = used_days + $4, updated_at = now()
    WHERE employee_id = $1 AND leave_type = $2 AND fiscal_year = $3
  `, employeeID, leaveType, fiscalYear, days)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListRequests(ctx context.Context, filter RequestFilter) ([]Request, error) {
	query := "SELECT " + requestColumns + requestFrom + " WHERE 1=1"
	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		query += " AND " + clause + " $" + strconv.Itoa(len(args))
	}
	if filter.EmployeeID != "" {
		add("r.employee_id =", filter.EmployeeID)
	}
	if filter.Status != "" {
		add("r.status =", filter.Status)
	}
	if filter.LeaveType != "" {
		add("r.leave_type =", filter.LeaveType)
	}
	if !filter.From.IsZero() {
		add("r.end_date >=", filter.From)
	}
	if !filter.To.IsZero() {
		add("r.start_date <=", filter.To)
	}
	query += " ORDER BY r.start_date DESC, r.created_at DESC LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) ListBalances(ctx context.Context, employeeID string, fiscalYear int) ([]Balance, error) {
	query := `
    SELECT id, employee_id, leave_type, fiscal_year, total_days, used_days, updated_at
    FROM leave_balances
    WHERE employee_id = $1`
	args := []any{employeeID}
	if fiscalYear > 0 {
		args = append(args, fiscalYear)
		query += " AND fiscal_year = $2"
	}
	query += " ORDER BY fiscal_year DESC, leave_type"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Balance{}
	for rows.Next() {
		var b Balance
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.LeaveType, &b.FiscalYear, &b.TotalDays, &b.UsedDays, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.Remaining = b.RemainingDays()
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) UpsertBalance(ctx context.Context, in BalanceInput) (Balance, error) {
	b := Balance{EmployeeID: in.EmployeeID, LeaveType: in.LeaveType, FiscalYear: in.FiscalYear, TotalDays: *in.TotalDays, UsedDays: in.UsedDays}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_balances (employee_id, leave_type, fiscal_year, total_days, used_days)
    VALUES ($1, $2, $3, $4, $5)
    ON CONFLICT (employee_id, leave_type, fiscal_year)
    DO UPDATE SET total_days = EXCLUDED.total_days, used_days = EXCLUDED.used_days, updated_at = now()
    RETURNING id, updated_at
  `, in.EmployeeID, in.LeaveType, in.FiscalYear, b.TotalDays, b.UsedDays).Scan(&b.ID, &b.UpdatedAt)
	if err != nil {
		return Balance{}, db.Classify(err, duplicateRules...)
	}
	b.Remaining = b.RemainingDays()
	return b, nil
}

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.EmployeeID, &req.EmployeeName, &req.LeaveType, &req.StartDate, &req.EndDate, &req.Days,
		&req.Reason, &req.Status, &req.ApprovedBy, &req.ApprovedAt, &req.CreatedAt)
	return req, err
}
