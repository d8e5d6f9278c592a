package compliance

import "hrportal/internal/platform/db"

var ErrAlreadySubmitted = db.InvalidState("only draft reports can be submitted")
