package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Profile struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employeeId"`
	BasicSalary    decimal.Decimal `json:"basicSalary"`
	Allowances     decimal.Decimal `json:"allowances"`
	Deductions     decimal.Decimal `json:"deductions"`
	Currency       string          `json:"currency"`
	PaymentMethod  string          `json:"paymentMethod"`
	BankName       string          `json:"bankName,omitempty"`
	BankBranch     string          `json:"bankBranch,omitempty"`
	AccountNumber  string          `json:"accountNumber,omitempty"`
	MobileProvider string          `json:"mobileProvider,omitempty"`
	MobileNumber   string          `json:"mobileNumber,omitempty"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ProfileInput carries a new payroll profile. Bank and mobile fields are
// required only for their payment method.
type ProfileInput struct {
	BasicSalary    *decimal.Decimal `json:"basicSalary" validate:"required" label:"Basic salary"`
	Allowances     decimal.Decimal  `json:"allowances"`
	Deductions     decimal.Decimal  `json:"deductions"`
	Currency       string           `json:"currency" validate:"omitempty,len=3"`
	PaymentMethod  string           `json:"paymentMethod" validate:"required,oneof=bank_transfer mobile_money cash" label:"Payment method"`
	BankName       string           `json:"bankName" validate:"required_if=PaymentMethod bank_transfer" label:"Bank name"`
	BankBranch     string           `json:"bankBranch"`
	AccountNumber  string           `json:"accountNumber" validate:"required_if=PaymentMethod bank_transfer" label:"Account number"`
	MobileProvider string           `json:"mobileProvider" validate:"required_if=PaymentMethod mobile_money" label:"Mobile money provider"`
	MobileNumber   string           `json:"mobileNumber" validate:"required_if=PaymentMethod mobile_money" label:"Mobile money number"`
	EffectiveDate  time.Time        `json:"effectiveDate" validate:"required" label:"Effective date"`
}

type RegisterRow struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeCode string  `json:"employeeCode"`
	FullName     string  `json:"fullName"`
	Department   string  `json:"department"`
	Profile      Profile `json:"profile"`
	Totals       Totals  `json:"totals"`
}

// Register is the current payroll profile of every active employee.
type Register struct {
	Rows   []RegisterRow `json:"rows"`
	Totals Totals        `json:"totals"`
}
