package order

type Status string

const (
	// StatusPending is used both for cart lines and for orders awaiting a vendor.
	StatusPending   Status = "Pending"
	StatusPending1  Status = "Pending1" // reorder suggestions
	StatusAccepted  Status = "Accepted"
	StatusDeclined  Status = "Declined"
	StatusCompleted Status = "Completed"
	StatusDone      Status = "Done" // vendor confirmed
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPending1, StatusAccepted, StatusDeclined, StatusCompleted, StatusDone:
		return true
	default:
		return false
	}
}
