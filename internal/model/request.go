package model

import "fmt"

// Request is a transfer intent read from the request source.
type Request struct {
	TransactionID int64
	From          int64
	To            int64
	Amount        int64
	Status        Status
}

func NewRequest(txID, from, to, amount int64) *Request {
	return &Request{
		TransactionID: txID,
		From:          from,
		To:            to,
		Amount:        amount,
		Status:        StatusPending,
	}
}

// Validate checks the fields that do not depend on account state.
func (r *Request) Validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("transaction %d: amount must be > 0 (got %d): %w", r.TransactionID, r.Amount, ErrInvalidRequest)
	}
	if r.From == r.To {
		return fmt.Errorf("transaction %d: source and destination are both account %d: %w", r.TransactionID, r.From, ErrInvalidRequest)
	}
	return nil
}

// Advance moves the request to next, rejecting unreachable transitions.
func (r *Request) Advance(next Status) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("transaction %d: %s -> %s: %w", r.TransactionID, r.Status, next, ErrInvalidTransition)
	}
	r.Status = next
	return nil
}

func (r *Request) Clone() *Request {
	cp := *r
	return &cp
}

func (r *Request) String() string {
	return fmt.Sprintf("#%d %d -> %d amount=%d status=%s", r.TransactionID, r.From, r.To, r.Amount, r.Status)
}
