package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type Request struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName,omitempty"`
	LeaveType    string     `json:"leaveType"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Days         int        `json:"days"`
	Reason       string     `json:"reason,omitempty"`
	Status       string     `json:"status"`
	ApprovedBy   string     `json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type RequestInput struct {
	EmployeeID string    `json:"employeeId" validate:"required,uuid" label:"Employee"`
	LeaveType  string    `json:"leaveType" validate:"required,oneof=annual sick maternity paternity compassionate study unpaid" label:"Leave type"`
	StartDate  time.Time `json:"startDate" validate:"required" label:"Start date"`
	EndDate    time.Time `json:"endDate" validate:"required" label:"End date"`
	Reason     string    `json:"reason" validate:"max=1000"`
}

type RequestFilter struct {
	EmployeeID string
	Status     string
	LeaveType  string
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

type Balance struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId"`
	LeaveType  string          `json:"leaveType"`
	FiscalYear int             `json:"fiscalYear"`
	TotalDays  decimal.Decimal `json:"totalDays"`
	UsedDays   decimal.Decimal `json:"usedDays"`
	Remaining  decimal.Decimal `json:"remainingDays"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// RemainingDays can go negative; used > total is reported, not blocked.
func (b Balance) RemainingDays() decimal.Decimal {
	return b.TotalDays.Sub(b.UsedDays)
}

type BalanceInput struct {
	EmployeeID string           `json:"employeeId" validate:"required,uuid" label:"Employee"`
	LeaveType  string           `json:"leaveType" validate:"required,oneof=annual sick maternity paternity compassionate study unpaid" label:"Leave type"`
	FiscalYear int              `json:"fiscalYear" validate:"required,gte=2000,lte=2100" label:"Fiscal year"`
	TotalDays  *decimal.Decimal `json:"totalDays" validate:"required" label:"Total days"`
	UsedDays   decimal.Decimal  `json:"usedDays"`
}
