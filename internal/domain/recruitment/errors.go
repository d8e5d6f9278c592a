package recruitment

import "hrportal/internal/platform/db"

var (
	ErrPostingNotOpen   = db.InvalidState("job posting is not accepting applications")
	ErrPostingFinalized = db.InvalidState("job posting is already filled")
)
