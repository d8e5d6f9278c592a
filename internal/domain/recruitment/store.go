package recruitment

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"hrportal/internal/platform/db"
	"hrportal/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) InsertPosting(ctx context.Context, in PostingInput) (Posting, error) {
	p := Posting{
		Title:          in.Title,
		DepartmentID:   in.DepartmentID,
		JobGradeID:     in.JobGradeID,
		Description:    in.Description,
		Requirements:   in.Requirements,
		EmploymentType: in.EmploymentType,
		Location:       in.Location,
		SalaryMin:      in.SalaryMin,
		SalaryMax:      in.SalaryMax,
		Status:         in.Status,
		PostedDate:     in.PostedDate,
		ClosingDate:    in.ClosingDate,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_postings
      (title, department_id, job_grade_id, description, requirements, employment_type, location,
       salary_min, salary_max, status, posted_date, closing_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id, created_at
  `, in.Title, querier.NullIfEmpty(in.DepartmentID), querier.NullIfEmpty(in.JobGradeID), querier.NullIfEmpty(in.Description),
		querier.NullIfEmpty(in.Requirements), in.EmploymentType, querier.NullIfEmpty(in.Location),
		in.SalaryMin, in.SalaryMax, in.Status, in.PostedDate, in.ClosingDate).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Posting{}, db.Classify(err)
	}
	return p, nil
}

func (s *Store) ListPostings(ctx context.Context, filter PostingFilter) ([]Posting, error) {
	query := `
    SELECT p.id, p.title, COALESCE(p.department_id::text, ''), COALESCE(d.name, ''), COALESCE(p.job_grade_id::text, ''),
      COALESCE(p.description, ''), COALESCE(p.requirements, ''), p.employment_type, COALESCE(p.location, ''),
      p.salary_min, p.salary_max, p.status, p.posted_date, p.closing_date,
      (SELECT COUNT(1) FROM job_applications a WHERE a.posting_id = p.id), p.created_at
    FROM job_postings p
    LEFT JOIN departments d ON d.id = p.department_id
    WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " AND p.status = $" + strconv.Itoa(len(args))
	}
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		query += " AND p.department_id = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY p.posted_date DESC, p.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Posting{}
	for rows.Next() {
		var p Posting
		var salaryMin, salaryMax decimal.NullDecimal
		if err := rows.Scan(&p.ID, &p.Title, &p.DepartmentID, &p.DepartmentName, &p.JobGradeID, &p.Description, &p.Requirements,
			&p.EmploymentType, &p.Location, &salaryMin, &salaryMax, &p.Status, &p.PostedDate, &p.ClosingDate,
			&p.Applications, &p.CreatedAt); err != nil {
			return nil, err
		}
		if salaryMin.Valid {
			p.SalaryMin = &salaryMin.Decimal
		}
		if salaryMax.Valid {
			p.SalaryMax = &salaryMax.Decimal
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) LockPostingStatus(ctx context.Context, id string) (string, error) {
	var status string
	if err := s.DB.QueryRow(ctx, "SELECT status FROM job_postings WHERE id = $1 FOR UPDATE", id).Scan(&status); err != nil {
		return "", db.Classify(err)
	}
	return status, nil
}

func (s *Store) SetPostingStatus(ctx context.Context, id, status string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE job_postings SET status = $2 WHERE id = $1", id, status)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (s *Store) InsertApplication(ctx context.Context, postingID string, in ApplicationInput) (Application, error) {
	a := Application{
		PostingID:     postingID,
		CandidateName: in.CandidateName,
		Email:         in.Email,
		Phone:         in.Phone,
		ResumeURL:     in.ResumeURL,
		Status:        ApplicationApplied,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_applications (posting_id, candidate_name, email, phone, resume_url, status)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, applied_at
  `, postingID, in.CandidateName, in.Email, querier.NullIfEmpty(in.Phone), querier.NullIfEmpty(in.ResumeURL), ApplicationApplied).
		Scan(&a.ID, &a.AppliedAt)
	if err != nil {
		return Application{}, db.Classify(err)
	}
	return a, nil
}

func (s *Store) ListApplications(ctx context.Context, postingID string) ([]Application, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, posting_id, candidate_name, email, COALESCE(phone, ''), COALESCE(resume_url, ''), status, applied_at
    FROM job_applications
    WHERE posting_id = $1
    ORDER BY applied_at DESC
  `, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.PostingID, &a.CandidateName, &a.Email, &a.Phone, &a.ResumeURL, &a.Status, &a.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
