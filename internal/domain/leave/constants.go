package leave

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var Types = []string{"annual", "sick", "maternity", "paternity", "compassionate", "study", "unpaid"}
