package employee

import (
	"hrportal/internal/domain/auth"
	cryptoutil "hrportal/internal/platform/crypto"
)

// FilterSensitiveFields hides identity numbers from everyone except HR and
// the employee themself. Managers see masked values for their reports.
func FilterSensitiveFields(emp *Employee, user auth.UserContext) {
	if user.RoleName == auth.RoleHR {
		return
	}
	if user.EmployeeID != "" && user.EmployeeID == emp.ID {
		return
	}
	if user.RoleName == auth.RoleManager && user.EmployeeID != "" && emp.ManagerID == user.EmployeeID {
		emp.NationalID = cryptoutil.Mask(emp.NationalID)
		emp.TaxID = cryptoutil.Mask(emp.TaxID)
		emp.SocialSecurityNumber = cryptoutil.Mask(emp.SocialSecurityNumber)
		emp.DateOfBirth = nil
		return
	}
	emp.NationalID = ""
	emp.TaxID = ""
	emp.SocialSecurityNumber = ""
	emp.DateOfBirth = nil
}
