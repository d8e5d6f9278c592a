package employee

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/domain/payroll"
	"hrportal/internal/domain/validation"
	cryptoutil "hrportal/internal/platform/crypto"
	"hrportal/internal/platform/querier"
)

type Service struct {
	db     querier.Querier
	store  *Store
	crypto *cryptoutil.Service
	now    func() time.Time
}

func NewService(db querier.Querier, crypto *cryptoutil.Service) *Service {
	return &Service{db: db, store: NewStore(db), crypto: crypto, now: time.Now}
}

// CreateEmployee inserts the employee, its contacts and the optional payroll
// profile in one transaction. Nothing is written when any part fails.
func (s *Service) CreateEmployee(ctx context.Context, in CreateInput) (Created, error) {
	normalizeCreate(&in)
	verr := validation.Struct(in)
	if in.Payroll != nil {
		payroll.CheckAmounts(verr, "payroll.", *in.Payroll)
	}
	if in.DateOfBirth != nil && !in.HireDate.IsZero() && !in.DateOfBirth.Before(in.HireDate) {
		verr.Add("dateOfBirth", "Date of birth must be before the hire date")
	}
	if err := verr.Err(); err != nil {
		return Created{}, err
	}

	var out Created
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		emp, err := store.InsertEmployee(ctx, in)
		if err != nil {
			return err
		}
		contacts, err := store.InsertContacts(ctx, emp.ID, in.Contacts)
		if err != nil {
			return err
		}
		out = Created{Employee: emp, Contacts: contacts}
		if in.Payroll != nil {
			profile, err := payroll.NewStore(tx, s.crypto).CreateProfile(ctx, emp.ID, *in.Payroll)
			if err != nil {
				return err
			}
			out.Payroll = &profile
		}
		return nil
	})
	if err != nil {
		return Created{}, err
	}
	return out, nil
}

func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context, filter Filter) ([]Employee, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	items, err := s.store.ListEmployees(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountEmployees(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, patch Patch) (Employee, error) {
	if patch.Email != nil {
		trimmed := strings.ToLower(strings.TrimSpace(*patch.Email))
		patch.Email = &trimmed
	}
	verr := validation.Struct(patch)
	if patch.TerminationDate != nil && patch.HireDate != nil && patch.TerminationDate.Before(*patch.HireDate) {
		verr.Add("terminationDate", "Termination date cannot be before hire date")
	}
	if err := verr.Err(); err != nil {
		return Employee{}, err
	}
	if err := s.store.UpdateEmployee(ctx, id, patch); err != nil {
		return Employee{}, err
	}
	return s.store.GetEmployee(ctx, id)
}

// DeactivateEmployee terminates the employee as of today. The record is kept.
func (s *Service) DeactivateEmployee(ctx context.Context, id string) error {
	today := s.now().UTC().Truncate(24 * time.Hour)
	return s.store.Deactivate(ctx, id, today)
}

func (s *Service) ListContacts(ctx context.Context, employeeID string) ([]Contact, error) {
	return s.store.ListContacts(ctx, employeeID)
}

// ReplaceContacts swaps the full contact list of an employee.
func (s *Service) ReplaceContacts(ctx context.Context, employeeID string, contacts []ContactInput) ([]Contact, error) {
	for i := range contacts {
		normalizeContact(&contacts[i])
	}
	payload := contactList{Contacts: contacts}
	if err := validation.Struct(payload).Err(); err != nil {
		return nil, err
	}

	var out []Contact
	err := querier.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		store := NewStore(tx)
		if _, err := store.LockEmployee(ctx, employeeID); err != nil {
			return err
		}
		if err := store.DeleteContacts(ctx, employeeID); err != nil {
			return err
		}
		inserted, err := store.InsertContacts(ctx, employeeID, contacts)
		if err != nil {
			return err
		}
		out = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type contactList struct {
	Contacts []ContactInput `json:"contacts" validate:"dive"`
}

func normalizeCreate(in *CreateInput) {
	in.EmployeeCode = strings.ToUpper(strings.TrimSpace(in.EmployeeCode))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.MiddleName = strings.TrimSpace(in.MiddleName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.NationalID = strings.TrimSpace(in.NationalID)
	in.TaxID = strings.TrimSpace(in.TaxID)
	in.SocialSecurityNumber = strings.TrimSpace(in.SocialSecurityNumber)
	if in.Status == "" {
		in.Status = StatusProbation
	}
	for i := range in.Contacts {
		normalizeContact(&in.Contacts[i])
	}
	if in.Payroll != nil {
		payroll.NormalizeProfile(in.Payroll)
	}
}

func normalizeContact(c *ContactInput) {
	c.ContactType = strings.TrimSpace(c.ContactType)
	c.FullName = strings.TrimSpace(c.FullName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
}
