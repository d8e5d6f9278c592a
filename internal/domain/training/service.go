package training

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/domain/validation"
	"hrportal/internal/platform/querier"
)

type Service struct {
	db    querier.Querier
	store *Store
}

func NewService(db querier.Querier) *Service {
	return &Service{db: db, store: NewStore(db)}
}

type Created struct {
	Program      Program       `json:"program"`
	Participants []Participant `json:"participants"`
}

func ValidateProgram(in ProgramInput) error {
	verr := validation.Struct(in)
	if in.Cost != nil && in.Cost.IsNegative() {
		verr.Add("cost", "Cost cannot be negative")
	}
	if in.Capacity > 0 && len(querier.UniqueIDs(in.EmployeeIDs)) > in.Capacity {
		verr.Add("employeeIds", "More participants than the program capacity")
	}
	return verr.Err()
}

// CreateProgram writes the program and its initial participants in one
// transaction. A capacity of zero means unlimited.
func (s *Service) CreateProgram(ctx context.Context, in ProgramInput) (Created, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Trainer = strings.TrimSpace(in.Trainer)
	in.Location = strings.TrimSpace(in.Location)
	if err := ValidateProgram(in); err != nil {
		return Created{}, err
	}

	var out Created
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		program, err := store.InsertProgram(ctx, in)
		if err != nil {
			return err
		}
		participants, err := store.InsertParticipants(ctx, program.ID, querier.UniqueIDs(in.EmployeeIDs))
		if err != nil {
			return err
		}
		program.Participants = len(participants)
		out = Created{Program: program, Participants: participants}
		return nil
	})
	if err != nil {
		return Created{}, err
	}
	return out, nil
}

func (s *Service) ListPrograms(ctx context.Context, status string) ([]Program, error) {
	return s.store.ListPrograms(ctx, status)
}

func (s *Service) AddParticipants(ctx context.Context, programID string, in ParticipantsInput) ([]Participant, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	ids := querier.UniqueIDs(in.EmployeeIDs)
	var out []Participant
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		status, capacity, enrolled, err := store.LockProgram(ctx, programID)
		if err != nil {
			return err
		}
		if status == ProgramCompleted || status == ProgramCancelled {
			return ErrProgramClosed
		}
		if capacity > 0 && enrolled+len(ids) > capacity {
			return ErrProgramFull
		}
		participants, err := store.InsertParticipants(ctx, programID, ids)
		if err != nil {
			return err
		}
		out = participants
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ListParticipants(ctx context.Context, programID string) ([]Participant, error) {
	return s.store.ListParticipants(ctx, programID)
}

func (s *Service) CompleteParticipant(ctx context.Context, programID, employeeID string, in CompletionInput) (Participant, error) {
	verr := validation.Struct(in)
	if in.Score != nil && (in.Score.IsNegative() || in.Score.GreaterThan(maxScore)) {
		verr.Add("score", "Score must be between 0 and 100")
	}
	if err := verr.Err(); err != nil {
		return Participant{}, err
	}

	var out Participant
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		status, err := store.GetParticipantStatus(ctx, programID, employeeID)
		if err != nil {
			return err
		}
		if status == ParticipantCompleted {
			return ErrAlreadyCompleted
		}
		p, err := store.MarkCompleted(ctx, programID, employeeID, in.CompletionDate, in.Score)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return Participant{}, err
	}
	return out, nil
}
