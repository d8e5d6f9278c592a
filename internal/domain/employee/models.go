package employee

import (
	"time"

	"hrportal/internal/domain/payroll"
)

type Employee struct {
	ID                   string     `json:"id"`
	EmployeeCode         string     `json:"employeeCode"`
	FirstName            string     `json:"firstName"`
	MiddleName           string     `json:"middleName,omitempty"`
	LastName             string     `json:"lastName"`
	Email                string     `json:"email"`
	Phone                string     `json:"phone,omitempty"`
	DateOfBirth          *time.Time `json:"dateOfBirth,omitempty"`
	Gender               string     `json:"gender,omitempty"`
	NationalID           string     `json:"nationalId,omitempty"`
	TaxID                string     `json:"taxId,omitempty"`
	SocialSecurityNumber string     `json:"socialSecurityNumber,omitempty"`
	EmploymentType       string     `json:"employmentType"`
	Status               string     `json:"status"`
	DepartmentID         string     `json:"departmentId,omitempty"`
	DepartmentName       string     `json:"departmentName,omitempty"`
	JobGradeID           string     `json:"jobGradeId,omitempty"`
	ManagerID            string     `json:"managerId,omitempty"`
	HireDate             time.Time  `json:"hireDate"`
	TerminationDate      *time.Time `json:"terminationDate,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Contact struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	ContactType  string    `json:"contactType"`
	FullName     string    `json:"fullName"`
	Relationship string    `json:"relationship,omitempty"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ContactInput struct {
	ContactType  string `json:"contactType" validate:"required,oneof=personal emergency next_of_kin" label:"Contact type"`
	FullName     string `json:"fullName" validate:"required" label:"Contact full name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone" validate:"required" label:"Contact phone number"`
	Email        string `json:"email" validate:"omitempty,email" label:"Contact email"`
	Address      string `json:"address"`
}

// CreateInput is the full onboarding payload: the employee record, its
// contacts and an optional first payroll profile.
type CreateInput struct {
	EmployeeCode         string                `json:"employeeCode" validate:"required,max=32" label:"Employee code"`
	FirstName            string                `json:"firstName" validate:"required" label:"First name"`
	MiddleName           string                `json:"middleName"`
	LastName             string                `json:"lastName" validate:"required" label:"Last name"`
	Email                string                `json:"email" validate:"required,email"`
	Phone                string                `json:"phone"`
	DateOfBirth          *time.Time            `json:"dateOfBirth"`
	Gender               string                `json:"gender" validate:"omitempty,oneof=male female other"`
	NationalID           string                `json:"nationalId" label:"National ID"`
	TaxID                string                `json:"taxId" label:"Tax ID"`
	SocialSecurityNumber string                `json:"socialSecurityNumber" label:"Social security number"`
	EmploymentType       string                `json:"employmentType" validate:"required,oneof=full_time part_time contract intern temporary" label:"Employment type"`
	Status               string                `json:"status" validate:"omitempty,oneof=probation active suspended terminated retired"`
	DepartmentID         string                `json:"departmentId" validate:"omitempty,uuid" label:"Department"`
	JobGradeID           string                `json:"jobGradeId" validate:"omitempty,uuid" label:"Job grade"`
	ManagerID            string                `json:"managerId" validate:"omitempty,uuid" label:"Manager"`
	HireDate             time.Time             `json:"hireDate" validate:"required" label:"Hire date"`
	Contacts             []ContactInput        `json:"contacts" validate:"dive"`
	Payroll              *payroll.ProfileInput `json:"payroll"`
}

// Patch updates only the fields that are set.
type Patch struct {
	FirstName            *string    `json:"firstName" validate:"omitempty,min=1" label:"First name"`
	MiddleName           *string    `json:"middleName"`
	LastName             *string    `json:"lastName" validate:"omitempty,min=1" label:"Last name"`
	Email                *string    `json:"email" validate:"omitempty,email"`
	Phone                *string    `json:"phone"`
	DateOfBirth          *time.Time `json:"dateOfBirth"`
	Gender               *string    `json:"gender" validate:"omitempty,oneof=male female other"`
	NationalID           *string    `json:"nationalId"`
	TaxID                *string    `json:"taxId"`
	SocialSecurityNumber *string    `json:"socialSecurityNumber"`
	EmploymentType       *string    `json:"employmentType" validate:"omitempty,oneof=full_time part_time contract intern temporary" label:"Employment type"`
	Status               *string    `json:"status" validate:"omitempty,oneof=probation active suspended terminated retired"`
	DepartmentID         *string    `json:"departmentId" validate:"omitempty,uuid" label:"Department"`
	JobGradeID           *string    `json:"jobGradeId" validate:"omitempty,uuid" label:"Job grade"`
	ManagerID            *string    `json:"managerId" validate:"omitempty,uuid" label:"Manager"`
	HireDate             *time.Time `json:"hireDate"`
	TerminationDate      *time.Time `json:"terminationDate"`
}

type Filter struct {
	Search         string
	Status         string
	DepartmentID   string
	EmploymentType string
	Limit          int
	Offset         int
}

// Created is the result of onboarding one employee.
type Created struct {
	Employee Employee         `json:"employee"`
	Contacts []Contact        `json:"contacts"`
	Payroll  *payroll.Profile `json:"payroll,omitempty"`
}
