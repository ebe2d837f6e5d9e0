package model

// Status is the progress of a transfer request through its two legs.
type Status int

const (
	StatusPending Status = iota
	StatusDebitApplied
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDebitApplied:
		return "debit-applied"
	case StatusComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// CanTransitionTo reports whether a request in status s may move to next.
// Pending and DebitApplied may be re-confirmed in place; Complete is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusPending || next == StatusDebitApplied
	case StatusDebitApplied:
		return next == StatusDebitApplied || next == StatusComplete
	default:
		return false
	}
}
