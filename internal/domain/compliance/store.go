package compliance

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/db"
	"hrportal/internal/platform/querier"
)

const reportColumns = `r.id, r.name, r.report_type, COALESCE(r.authority, ''), r.period_start, r.period_end, r.due_date,
  r.status, COALESCE(r.reference_number, ''), r.submitted_at, COALESCE(r.notes, ''),
  COALESCE((SELECT SUM(i.amount) FROM statutory_report_items i WHERE i.report_id = r.id), 0), r.created_at`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) InsertReport(ctx context.Context, in ReportInput) (Report, error) {
	r := Report{
		Name:        in.Name,
		ReportType:  in.ReportType,
		Authority:   in.Authority,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		DueDate:     in.DueDate,
		Status:      StatusDraft,
		Notes:       in.Notes,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO statutory_reports (name, report_type, authority, period_start, period_end, due_date, status, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id, created_at
  `, in.Name, in.ReportType, querier.NullIfEmpty(in.Authority), in.PeriodStart, in.PeriodEnd, in.DueDate,
		StatusDraft, querier.NullIfEmpty(in.Notes)).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return Report{}, db.Classify(err)
	}
	return r, nil
}

func (s *Store) InsertItems(ctx context.Context, reportID string, items []ItemInput) ([]Item, error) {
	out := make([]Item, 0, len(items))
	if len(items) == 0 {
		return out, nil
	}
	values := make([][]any, 0, len(items))
	for _, it := range items {
		values = append(values, []any{reportID, querier.NullIfEmpty(it.EmployeeID), it.Description, *it.Amount})
	}
	placeholders, args := querier.BulkValues(0, values)
	rows, err := s.DB.Query(ctx, `
    INSERT INTO statutory_report_items (report_id, employee_id, description, amount)
    VALUES `+placeholders+`
    RETURNING id
  `, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		it := Item{ReportID: reportID, EmployeeID: items[i].EmployeeID, Description: items[i].Description, Amount: *items[i].Amount}
		if err := rows.Scan(&it.ID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	return out, nil
}

func (s *Store) GetReport(ctx context.Context, id string) (Report, error) {
	r, err := scanReport(s.DB.QueryRow(ctx, "SELECT "+reportColumns+" FROM statutory_reports r WHERE r.id = $1", id))
	if err != nil {
		return Report{}, db.Classify(err)
	}
	return r, nil
}

func (s *Store) ListItems(ctx context.Context, reportID string) ([]Item, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, report_id, COALESCE(employee_id::text, ''), description, amount
    FROM statutory_report_items
    WHERE report_id = $1
    ORDER BY created_at, id
  `, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ReportID, &it.EmployeeID, &it.Description, &it.Amount); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *Store) ListReports(ctx context.Context, filter ReportFilter) ([]Report, error) {
	query := "SELECT " + reportColumns + " FROM statutory_reports r WHERE 1=1"
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " AND r.status = $" + strconv.Itoa(len(args))
	}
	if filter.ReportType != "" {
		args = append(args, filter.ReportType)
		query += " AND r.report_type = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY r.due_date, r.created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) LockStatus(ctx context.Context, id string) (string, error) {
	var status string
	if err := s.DB.QueryRow(ctx, "SELECT status FROM statutory_reports WHERE id = $1 FOR UPDATE", id).Scan(&status); err != nil {
		return "", db.Classify(err)
	}
	return status, nil
}

func (s *Store) MarkSubmitted(ctx context.Context, id, reference string) (time.Time, error) {
	var submittedAt time.Time
	err := s.DB.QueryRow(ctx, `
    UPDATE statutory_reports
    SET status = $2, reference_number = $3, submitted_at = now()
    WHERE id = $1
    RETURNING submitted_at
  `, id, StatusSubmitted, reference).Scan(&submittedAt)
	if err != nil {
		return time.Time{}, db.Classify(err)
	}
	return submittedAt, nil
}

func scanReport(row pgx.Row) (Report, error) {
	var r Report
	err := row.Scan(&r.ID, &r.Name, &r.ReportType, &r.Authority, &r.PeriodStart, &r.PeriodEnd, &r.DueDate, &r.Status,
		&r.ReferenceNumber, &r.SubmittedAt, &r.Notes, &r.Total, &r.CreatedAt)
	return r, err
}
