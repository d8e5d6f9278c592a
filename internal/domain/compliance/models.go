package compliance

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
)

type Report struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ReportType      string          `json:"reportType"`
	Authority       string          `json:"authority,omitempty"`
	PeriodStart     time.Time       `json:"periodStart"`
	PeriodEnd       time.Time       `json:"periodEnd"`
	DueDate         time.Time       `json:"dueDate"`
	Status          string          `json:"status"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	SubmittedAt     *time.Time      `json:"submittedAt,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Total           decimal.Decimal `json:"total"`
	Items           []Item          `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Overdue reports whether a draft has passed its due date on day.
func (r Report) Overdue(day time.Time) bool {
	return r.Status == StatusDraft && day.After(r.DueDate)
}

type Item struct {
	ID          string          `json:"id"`
	ReportID    string          `json:"reportId"`
	EmployeeID  string          `json:"employeeId,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type ReportInput struct {
	Name        string      `json:"name" validate:"required,max=200" label:"Report name"`
	ReportType  string      `json:"reportType" validate:"required,oneof=tax pension social_security health_insurance housing_fund training_levy labour other" label:"Report type"`
	Authority   string      `json:"authority" validate:"max=200"`
	PeriodStart time.Time   `json:"periodStart" validate:"required" label:"Period start"`
	PeriodEnd   time.Time   `json:"periodEnd" validate:"required,gtefield=PeriodStart" label:"Period end"`
	DueDate     time.Time   `json:"dueDate" validate:"required" label:"Due date"`
	Notes       string      `json:"notes"`
	Items       []ItemInput `json:"items" validate:"dive"`
}

type ItemInput struct {
	EmployeeID  string           `json:"employeeId" validate:"omitempty,uuid" label:"Employee"`
	Description string           `json:"description" validate:"required,max=500" label:"Item description"`
	Amount      *decimal.Decimal `json:"amount" validate:"required" label:"Item amount"`
}

type ReportFilter struct {
	Status     string
	ReportType string
}

type SubmitInput struct {
	ReferenceNumber string `json:"referenceNumber" validate:"required,max=100" label:"Reference number"`
}
