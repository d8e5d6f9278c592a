package training

import "hrportal/internal/platform/db"

var (
	ErrProgramFull      = db.InvalidState("training program is at capacity")
	ErrProgramClosed    = db.InvalidState("training program no longer accepts participants")
	ErrAlreadyCompleted = db.InvalidState("participant has already completed this program")
)

var duplicateRules = []db.DuplicateRule{
	{Match: "training_participants_program_employee", Message: "Employee is already enrolled in this program."},
}
