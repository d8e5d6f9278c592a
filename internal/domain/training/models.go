package training

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProgramScheduled  = "scheduled"
	ProgramInProgress = "in_progress"
	ProgramCompleted  = "completed"
	ProgramCancelled  = "cancelled"

	ParticipantEnrolled  = "enrolled"
	ParticipantCompleted = "completed"
	ParticipantDropped   = "dropped"
)

var maxScore = decimal.NewFromInt(100)

type Program struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	Trainer      string          `json:"trainer,omitempty"`
	Location     string          `json:"location,omitempty"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	Capacity     int             `json:"capacity"`
	Cost         decimal.Decimal `json:"cost"`
	Status       string          `json:"status"`
	Participants int             `json:"participants"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type ProgramInput struct {
	Title       string           `json:"title" validate:"required,max=200" label:"Program title"`
	Description string           `json:"description"`
	Category    string           `json:"category" validate:"required,oneof=technical compliance leadership soft_skills safety onboarding other" label:"Category"`
	Trainer     string           `json:"trainer" validate:"max=200"`
	Location    string           `json:"location" validate:"max=200"`
	StartDate   time.Time        `json:"startDate" validate:"required" label:"Start date"`
	EndDate     time.Time        `json:"endDate" validate:"required,gtefield=StartDate" label:"End date"`
	Capacity    int              `json:"capacity" validate:"gte=0" label:"Capacity"`
	Cost        *decimal.Decimal `json:"cost" validate:"required" label:"Cost"`
	EmployeeIDs []string         `json:"employeeIds" validate:"dive,uuid" label:"Employee"`
}

type Participant struct {
	ID             string           `json:"id"`
	ProgramID      string           `json:"programId"`
	EmployeeID     string           `json:"employeeId"`
	EmployeeName   string           `json:"employeeName,omitempty"`
	Status         string           `json:"status"`
	CompletionDate *time.Time       `json:"completionDate,omitempty"`
	Score          *decimal.Decimal `json:"score,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

type ParticipantsInput struct {
	EmployeeIDs []string `json:"employeeIds" validate:"required,min=1,dive,uuid" label:"Employees"`
}

type CompletionInput struct {
	CompletionDate time.Time        `json:"completionDate" validate:"required" label:"Completion date"`
	Score          *decimal.Decimal `json:"score"`
}
