package benefits

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	CoverageEmployee = "employee"
	DefaultCurrency  = "USD"
)

type Plan struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	BenefitType          string          `json:"benefitType"`
	Provider             string          `json:"provider,omitempty"`
	Description          string          `json:"description,omitempty"`
	Cost                 decimal.Decimal `json:"cost"`
	EmployeeContribution decimal.Decimal `json:"employeeContribution"`
	Currency             string          `json:"currency"`
	EffectiveDate        time.Time       `json:"effectiveDate"`
	EndDate              *time.Time      `json:"endDate,omitempty"`
	Status               string          `json:"status"`
	Enrolled             int             `json:"enrolled"`
	CreatedAt            time.Time       `json:"createdAt"`
}

type PlanInput struct {
	Name                 string           `json:"name" validate:"required,max=200" label:"Plan name"`
	BenefitType          string           `json:"benefitType" validate:"required,oneof=health dental vision life retirement disability wellness other" label:"Benefit type"`
	Provider             string           `json:"provider" validate:"max=200"`
	Description          string           `json:"description"`
	Cost                 *decimal.Decimal `json:"cost" validate:"required" label:"Cost"`
	EmployeeContribution decimal.Decimal  `json:"employeeContribution"`
	Currency             string           `json:"currency" validate:"omitempty,len=3"`
	EffectiveDate        time.Time        `json:"effectiveDate" validate:"required" label:"Effective date"`
	EndDate              *time.Time       `json:"endDate" validate:"omitempty,gtefield=EffectiveDate" label:"End date"`
	EmployeeIDs          []string         `json:"employeeIds" validate:"dive,uuid" label:"Employee"`
}

type Enrollment struct {
	ID             string    `json:"id"`
	PlanID         string    `json:"planId"`
	EmployeeID     string    `json:"employeeId"`
	EmployeeName   string    `json:"employeeName,omitempty"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	CoverageLevel  string    `json:"coverageLevel"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type EnrollmentInput struct {
	EmployeeIDs    []string  `json:"employeeIds" validate:"required,min=1,dive,uuid" label:"Employees"`
	EnrollmentDate time.Time `json:"enrollmentDate" validate:"required" label:"Enrollment date"`
	CoverageLevel  string    `json:"coverageLevel" validate:"omitempty,oneof=employee employee_spouse employee_children family" label:"Coverage level"`
}
