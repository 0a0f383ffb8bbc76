package model

// Status is the application pipeline stage. Only the values below are
// accepted; anything else is a validation failure, never stored as-is.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
	StatusAccepted  Status = "accepted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusWithdrawn, StatusAccepted:
		return true
	}
	return false
}
