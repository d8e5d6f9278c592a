package payroll

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"

	cryptoutil "hrportal/internal/platform/crypto"
	"hrportal/internal/platform/db"
	"hrportal/internal/platform/querier"
)

const profileColumns = `p.id, p.employee_id, p.basic_salary, p.allowances, p.deductions, p.currency, p.payment_method,
  COALESCE(p.bank_name, ''), COALESCE(p.bank_branch, ''), COALESCE(p.account_number, ''), p.account_number_enc,
  COALESCE(p.mobile_provider, ''), COALESCE(p.mobile_number, ''), p.effective_date, p.created_at`

// inEffect limits payroll_profiles p to rows already in effect. Future-dated
// profiles are scheduled changes and never count as current.
const inEffect = `p.effective_date <= CURRENT_DATE`

type Store struct {
	DB     querier.Querier
	Crypto *cryptoutil.Service
}

func NewStore(db querier.Querier, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

func (s *Store) CreateProfile(ctx context.Context, employeeID string, in ProfileInput) (Profile, error) {
	profile := Profile{
		EmployeeID:     employeeID,
		BasicSalary:    *in.BasicSalary,
		Allowances:     in.Allowances,
		Deductions:     in.Deductions,
		Currency:       in.Currency,
		PaymentMethod:  in.PaymentMethod,
		BankName:       in.BankName,
		BankBranch:     in.BankBranch,
		AccountNumber:  in.AccountNumber,
		MobileProvider: in.MobileProvider,
		MobileNumber:   in.MobileNumber,
		EffectiveDate:  in.EffectiveDate,
	}

	var plainAccount any
	var sealedAccount []byte
	if s.Crypto.Configured() {
		sealed, err := s.Crypto.SealString(in.AccountNumber)
		if err != nil {
			return Profile{}, err
		}
		sealedAccount = sealed
	} else {
		plainAccount = querier.NullIfEmpty(in.AccountNumber)
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_profiles (employee_id, basic_salary, allowances, deductions, currency, payment_method,
      bank_name, bank_branch, account_number, account_number_enc, mobile_provider, mobile_number, effective_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id, created_at
  `, employeeID, profile.BasicSalary, profile.Allowances, profile.Deductions, profile.Currency, profile.PaymentMethod,
		querier.NullIfEmpty(in.BankName), querier.NullIfEmpty(in.BankBranch), plainAccount, sealedAccount,
		querier.NullIfEmpty(in.MobileProvider), querier.NullIfEmpty(in.MobileNumber), in.EffectiveDate).
		Scan(&profile.ID, &profile.CreatedAt)
	if err != nil {
		return Profile{}, db.Classify(err)
	}
	return profile, nil
}

// CurrentProfile returns the in-effect profile with the most recent
// effective date.
func (s *Store) CurrentProfile(ctx context.Context, employeeID string) (Profile, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+profileColumns+`
    FROM payroll_profiles p
    WHERE p.employee_id = $1 AND `+inEffect+`
    ORDER BY p.effective_date DESC, p.created_at DESC
    LIMIT 1
  `, employeeID)
	profile, err := s.scanProfile(row)
	if err != nil {
		return Profile{}, db.Classify(err)
	}
	return profile, nil
}

func (s *Store) ListProfiles(ctx context.Context, employeeID string) ([]Profile, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+profileColumns+`
    FROM payroll_profiles p
    WHERE p.employee_id = $1
    ORDER BY p.effective_date DESC, p.created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Profile{}
	for rows.Next() {
		profile, err := s.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, profile)
	}
	return out, rows.Err()
}

// RegisterRows loads the current profile of every employee still on payroll,
// using the same rule as CurrentProfile.
func (s *Store) RegisterRows(ctx context.Context) ([]RegisterRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT ON (e.id)
      e.employee_code, e.first_name || ' ' || e.last_name, COALESCE(d.name, ''),
      `+profileColumns+`
    FROM employees e
    JOIN payroll_profiles p ON p.employee_id = e.id AND `+inEffect+`
    LEFT JOIN departments d ON d.id = e.department_id
    WHERE e.status NOT IN ('terminated','retired')
    ORDER BY e.id, p.effective_date DESC, p.created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RegisterRow{}
	for rows.Next() {
		var row RegisterRow
		var sealed []byte
		p := &row.Profile
		if err := rows.Scan(&row.EmployeeCode, &row.FullName, &row.Department,
			&p.ID, &p.EmployeeID, &p.BasicSalary, &p.Allowances, &p.Deductions, &p.Currency, &p.PaymentMethod,
			&p.BankName, &p.BankBranch, &p.AccountNumber, &sealed,
			&p.MobileProvider, &p.MobileNumber, &p.EffectiveDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.AccountNumber = s.openAccount(sealed, p.AccountNumber)
		row.EmployeeID = p.EmployeeID
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	var sealed []byte
	if err := row.Scan(&p.ID, &p.EmployeeID, &p.BasicSalary, &p.Allowances, &p.Deductions, &p.Currency, &p.PaymentMethod,
		&p.BankName, &p.BankBranch, &p.AccountNumber, &sealed,
		&p.MobileProvider, &p.MobileNumber, &p.EffectiveDate, &p.CreatedAt); err != nil {
		return Profile{}, err
	}
	p.AccountNumber = s.openAccount(sealed, p.AccountNumber)
	return p, nil
}

func (s *Store) openAccount(sealed []byte, plain string) string {
	if len(sealed) == 0 {
		return plain
	}
	value, err := s.Crypto.OpenString(sealed)
	if err != nil {
		slog.Warn("decrypt account number failed", "err", err)
		return ""
	}
	return value
}
