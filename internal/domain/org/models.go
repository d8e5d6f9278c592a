package org

import (
	"time"

	"github.com/shopspring/decimal"
)

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	ManagerID   string    `json:"managerId"`
	Headcount   int       `json:"headcount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type DepartmentInput struct {
	Name        string `json:"name" validate:"required,max=120" label:"Department name"`
	Code        string `json:"code" validate:"omitempty,max=20"`
	Description string `json:"description"`
	ManagerID   string `json:"managerId" validate:"omitempty,uuid" label:"Manager"`
}

type DepartmentPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120" label:"Department name"`
	Code        *string `json:"code" validate:"omitempty,max=20"`
	Description *string `json:"description"`
	ManagerID   *string `json:"managerId" validate:"omitempty,uuid" label:"Manager"`
}

type JobGrade struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Level     int             `json:"level"`
	MinSalary decimal.Decimal `json:"minSalary"`
	MaxSalary decimal.Decimal `json:"maxSalary"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
}

type JobGradeInput struct {
	Code      string           `json:"code" validate:"required,max=20" label:"Grade code"`
	Name      string           `json:"name" validate:"required" label:"Grade name"`
	Level     int              `json:"level" validate:"gte=1"`
	MinSalary *decimal.Decimal `json:"minSalary" validate:"required" label:"Minimum salary"`
	MaxSalary *decimal.Decimal `json:"maxSalary" validate:"required" label:"Maximum salary"`
	Currency  string           `json:"currency" validate:"omitempty,len=3"`
}
