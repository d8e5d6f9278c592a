package recruitment

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PostingDraft  = "draft"
	PostingOpen   = "open"
	PostingOnHold = "on_hold"
	PostingClosed = "closed"
	PostingFilled = "filled"

	ApplicationApplied   = "applied"
	ApplicationScreening = "screening"
	ApplicationInterview = "interview"
	ApplicationOffered   = "offered"
	ApplicationHired     = "hired"
	ApplicationRejected  = "rejected"
	ApplicationWithdrawn = "withdrawn"
)

type Posting struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	DepartmentID   string           `json:"departmentId,omitempty"`
	DepartmentName string           `json:"departmentName,omitempty"`
	JobGradeID     string           `json:"jobGradeId,omitempty"`
	Description    string           `json:"description,omitempty"`
	Requirements   string           `json:"requirements,omitempty"`
	EmploymentType string           `json:"employmentType"`
	Location       string           `json:"location,omitempty"`
	SalaryMin      *decimal.Decimal `json:"salaryMin,omitempty"`
	SalaryMax      *decimal.Decimal `json:"salaryMax,omitempty"`
	Status         string           `json:"status"`
	PostedDate     time.Time        `json:"postedDate"`
	ClosingDate    *time.Time       `json:"closingDate,omitempty"`
	Applications   int              `json:"applications"`
	CreatedAt      time.Time        `json:"createdAt"`
}

type PostingInput struct {
	Title          string           `json:"title" validate:"required,max=200" label:"Job title"`
	DepartmentID   string           `json:"departmentId" validate:"omitempty,uuid" label:"Department"`
	JobGradeID     string           `json:"jobGradeId" validate:"omitempty,uuid" label:"Job grade"`
	Description    string           `json:"description"`
	Requirements   string           `json:"requirements"`
	EmploymentType string           `json:"employmentType" validate:"required,oneof=full_time part_time contract intern temporary" label:"Employment type"`
	Location       string           `json:"location" validate:"max=200"`
	SalaryMin      *decimal.Decimal `json:"salaryMin"`
	SalaryMax      *decimal.Decimal `json:"salaryMax"`
	Status         string           `json:"status" validate:"omitempty,oneof=draft open" label:"Status"`
	PostedDate     time.Time        `json:"postedDate" validate:"required" label:"Posted date"`
	ClosingDate    *time.Time       `json:"closingDate" validate:"omitempty,gtefield=PostedDate" label:"Closing date"`
}

type PostingFilter struct {
	Status       string
	DepartmentID string
}

type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=draft open on_hold closed filled" label:"Status"`
}

type Application struct {
	ID            string    `json:"id"`
	PostingID     string    `json:"postingId"`
	CandidateName string    `json:"candidateName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	ResumeURL     string    `json:"resumeUrl,omitempty"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"appliedAt"`
}

type ApplicationInput struct {
	CandidateName string `json:"candidateName" validate:"required,max=200" label:"Candidate name"`
	Email         string `json:"email" validate:"required,email" label:"Email"`
	Phone         string `json:"phone" validate:"max=40"`
	ResumeURL     string `json:"resumeUrl" validate:"omitempty,url" label:"Resume link"`
}
