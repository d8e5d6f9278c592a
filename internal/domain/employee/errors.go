package employee

import "hrportal/internal/platform/db"

var ErrAlreadyInactive = db.InvalidState("employee is already inactive")

// duplicateRules turn unique violations on employees into messages a form can show.
var duplicateRules = []db.DuplicateRule{
	{Match: "national_id", Message: "An employee with this national ID already exists."},
	{Match: "tax_id", Message: "An employee with this tax ID already exists."},
	{Match: "social_security_number", Message: "An employee with this social security number already exists."},
	{Match: "employees_email", Message: "An employee with this email address already exists."},
	{Match: "employee_code", Message: "An employee with this employee code already exists."},
}
