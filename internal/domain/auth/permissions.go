package auth

import (
	"context"
	"slices"
)

const (
	RoleHR       = "HR"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

type UserContext struct {
	UserID     string
	EmployeeID string
	RoleName   string
}

const (
	PermEmployeesRead     = "employees.read"
	PermEmployeesWrite    = "employees.write"
	PermOrgRead           = "org.read"
	PermOrgWrite          = "org.write"
	PermPayrollRead       = "payroll.read"
	PermPayrollWrite      = "payroll.write"
	PermLeaveRead         = "leave.read"
	PermLeaveWrite        = "leave.write"
	PermLeaveApprove      = "leave.approve"
	PermPerformanceRead   = "performance.read"
	PermPerformanceReview = "performance.review"
	PermBenefitsRead      = "benefits.read"
	PermBenefitsWrite     = "benefits.write"
	PermTrainingRead      = "training.read"
	PermTrainingWrite     = "training.write"
	PermRecruitmentRead   = "recruitment.read"
	PermRecruitmentWrite  = "recruitment.write"
	PermComplianceRead    = "compliance.read"
	PermComplianceWrite   = "compliance.write"
	PermReportsRead       = "reports.read"
	PermReportsExport     = "reports.export"
	PermAuditRead         = "audit.read"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermOrgRead,
	PermOrgWrite,
	PermPayrollRead,
	PermPayrollWrite,
	PermLeaveRead,
	PermLeaveWrite,
	PermLeaveApprove,
	PermPerformanceRead,
	PermPerformanceReview,
	PermBenefitsRead,
	PermBenefitsWrite,
	PermTrainingRead,
	PermTrainingWrite,
	PermRecruitmentRead,
	PermRecruitmentWrite,
	PermComplianceRead,
	PermComplianceWrite,
	PermReportsRead,
	PermReportsExport,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermOrgRead,
		PermLeaveRead,
		PermLeaveWrite,
		PermPerformanceRead,
		PermBenefitsRead,
		PermTrainingRead,
		PermRecruitmentRead,
		PermReportsRead,
	},
	RoleManager: {
		PermEmployeesRead,
		PermOrgRead,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermPerformanceRead,
		PermPerformanceReview,
		PermBenefitsRead,
		PermTrainingRead,
		PermTrainingWrite,
		PermRecruitmentRead,
		PermRecruitmentWrite,
		PermReportsRead,
	},
	RoleHR: DefaultPermissions,
}

func IsKnownRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

// StaticPermissions resolves permissions from RolePermissions.
type StaticPermissions struct{}

func (StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	return slices.Contains(RolePermissions[role], permission), nil
}
