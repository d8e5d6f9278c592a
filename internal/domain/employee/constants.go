package employee

const (
	StatusProbation  = "probation"
	StatusActive     = "active"
	StatusSuspended  = "suspended"
	StatusTerminated = "terminated"
	StatusRetired    = "retired"

	ContactPersonal  = "personal"
	ContactEmergency = "emergency"
	ContactNextOfKin = "next_of_kin"
)

var Statuses = []string{StatusProbation, StatusActive, StatusSuspended, StatusTerminated, StatusRetired}

var EmploymentTypes = []string{"full_time", "part_time", "contract", "intern", "temporary"}
