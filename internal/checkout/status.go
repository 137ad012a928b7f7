package checkout

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusSubmitting Status = "SUBMITTING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

func CanTransitionTo(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusSubmitting
	case StatusSubmitting:
		return to == StatusCompleted || to == StatusFailed
	case StatusFailed:
		// retry is always user-initiated, never automatic
		return to == StatusSubmitting
	default:
		return false
	}
}
