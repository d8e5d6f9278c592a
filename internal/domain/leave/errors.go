package leave

import "hrportal/internal/platform/db"

var ErrNotPending = db.InvalidState("only pending leave requests can be approved")

var duplicateRules = []db.DuplicateRule{
	{Match: "leave_balances_employee_type_year", Message: "A balance for this leave type and fiscal year already exists."},
}
