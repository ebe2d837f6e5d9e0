package model

import "errors"

type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeRejected
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeRejected:
		return "rejected"
	default:
		return "failed"
	}
}

// OutcomeOf classifies the error returned by a transfer.
// Business rejections and malformed input are both reported as rejected.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrInvalidRequest):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}
