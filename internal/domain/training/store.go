package training

import (
	"context"
	"time"

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

func (s *Store) InsertProgram(ctx context.Context, in ProgramInput) (Program, error) {
	p := Program{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Trainer:     in.Trainer,
		Location:    in.Location,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Capacity:    in.Capacity,
		Cost:        *in.Cost,
		Status:      ProgramScheduled,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO training_programs (title, description, category, trainer, location, start_date, end_date, capacity, cost, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id, created_at
  `, in.Title, querier.NullIfEmpty(in.Description), in.Category, querier.NullIfEmpty(in.Trainer),
		querier.NullIfEmpty(in.Location), in.StartDate, in.EndDate, in.Capacity, p.Cost, ProgramScheduled).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Program{}, db.Classify(err)
	}
	return p, nil
}

func (s *Store) InsertParticipants(ctx context.Context, programID string, employeeIDs []string) ([]Participant, error) {
	out := make([]Participant, 0, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}
	values := make([][]any, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		values = append(values, []any{programID, id, ParticipantEnrolled})
	}
	placeholders, args := querier.BulkValues(0, values)
	rows, err := s.DB.Query(ctx, `
    INSERT INTO training_participants (program_id, employee_id, status)
    VALUES `+placeholders+`
    RETURNING id, created_at
  `, args...)
	if err != nil {
		return nil, db.Classify(err, duplicateRules...)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		p := Participant{ProgramID: programID, EmployeeID: employeeIDs[i], Status: ParticipantEnrolled}
		if err := rows.Scan(&p.ID, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err, duplicateRules...)
	}
	return out, nil
}

// LockProgram returns the program's status, capacity and current
// participant count while holding a row lock on the program.
func (s *Store) LockProgram(ctx context.Context, id string) (status string, capacity, enrolled int, err error) {
	err = s.DB.QueryRow(ctx, `
    SELECT status, capacity FROM training_programs WHERE id = $1 FOR UPDATE
  `, id).Scan(&status, &capacity)
	if err != nil {
		return "", 0, 0, db.Classify(err)
	}
	err = s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM training_participants WHERE program_id = $1 AND status <> 'dropped'
  `, id).Scan(&enrolled)
	if err != nil {
		return "", 0, 0, err
	}
	return status, capacity, enrolled, nil
}

func (s *Store) ListPrograms(ctx context.Context, status string) ([]Program, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.title, COALESCE(p.description, ''), p.category, COALESCE(p.trainer, ''), COALESCE(p.location, ''),
      p.start_date, p.end_date, p.capacity, p.cost, p.status, COUNT(tp.id), p.created_at
    FROM training_programs p
    LEFT JOIN training_participants tp ON tp.program_id = p.id AND tp.status <> 'dropped'
    WHERE ($1 = '' OR p.status = $1)
    GROUP BY p.id
    ORDER BY p.start_date DESC
  `, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Program{}
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Trainer, &p.Location, &p.StartDate, &p.EndDate,
			&p.Capacity, &p.Cost, &p.Status, &p.Participants, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ListParticipants(ctx context.Context, programID string) ([]Participant, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT tp.id, tp.program_id, tp.employee_id, e.first_name || ' ' || e.last_name, tp.status,
      tp.completion_date, tp.score, tp.created_at
    FROM training_participants tp
    JOIN employees e ON e.id = tp.employee_id
    WHERE tp.program_id = $1
    ORDER BY e.last_name, e.first_name
  `, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Participant{}
	for rows.Next() {
		var p Participant
		var score decimal.NullDecimal
		if err := rows.Scan(&p.ID, &p.ProgramID, &p.EmployeeID, &p.EmployeeName, &p.Status, &p.CompletionDate, &score, &p.CreatedAt); err != nil {
			return nil, err
		}
		if score.Valid {
			p.Score = &score.Decimal
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetParticipantStatus(ctx context.Context, programID, employeeID string) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, `
    SELECT status FROM training_participants WHERE program_id = $1 AND employee_id = $2 FOR UPDATE
  `, programID, employeeID).Scan(&status)
	if err != nil {
		return "", db.Classify(err)
	}
	return status, nil
}

func (s *Store) MarkCompleted(ctx context.Context, programID, employeeID string, on time.Time, score *decimal.Decimal) (Participant, error) {
	p := Participant{ProgramID: programID, EmployeeID: employeeID, Status: ParticipantCompleted, CompletionDate: &on, Score: score}
	err := s.DB.QueryRow(ctx, `
    UPDATE training_participants
    SET status = $3, completion_date = $4, score = $5
    WHERE program_id = $1 AND employee_id = $2
    RETURNING id, created_at
  `, programID, employeeID, ParticipantCompleted, on, score).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Participant{}, db.Classify(err)
	}
	return p, nil
}
