package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusPending, true},
		{StatusPending, StatusDebitApplied, true},
		{StatusPending, StatusComplete, false},
		{StatusDebitApplied, StatusPending, false},
		{StatusDebitApplied, StatusDebitApplied, true},
		{StatusDebitApplied, StatusComplete, true},
		{StatusComplete, StatusPending, false},
		{StatusComplete, StatusDebitApplied, false},
		{StatusComplete, StatusComplete, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			req := &Request{TransactionID: 1, From: 1, To: 2, Amount: 1, Status: tt.from}
			err := req.Advance(tt.to)
			if tt.ok {
				if err != nil {
					t.Fatalf("Advance() err=%v, want nil", err)
				}
				if req.Status != tt.to {
					t.Errorf("status=%s, want %s", req.Status, tt.to)
				}
				return
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Advance() err=%v, want ErrInvalidTransition", err)
			}
			if req.Status != tt.from {
				t.Errorf("status changed to %s on rejected transition", req.Status)
			}
		})
	}
}

func TestRequestValidate(t *testing.T) {
	if err := NewRequest(1, 1, 2, 30).Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	for _, req := range []*Request{
		NewRequest(2, 1, 2, 0),
		NewRequest(3, 1, 2, -5),
		NewRequest(4, 7, 7, 10),
	} {
		if err := req.Validate(); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("%v: err=%v, want ErrInvalidRequest", req, err)
		}
	}
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		err  error
		want Outcome
	}{
		{nil, OutcomeApplied},
		{fmt.Errorf("tx 1: %w", ErrInsufficientFunds), OutcomeRejected},
		{fmt.Errorf("tx 1: %w", ErrAccountNotFound), OutcomeRejected},
		{fmt.Errorf("tx 1: %w", ErrStoreUnavailable), OutcomeFailed},
		{fmt.Errorf("tx 1: %w", ErrLogWriteFailed), OutcomeFailed},
	}
	for _, tt := range tests {
		if got := OutcomeOf(tt.err); got != tt.want {
			t.Errorf("OutcomeOf(%v)=%s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := NewRequest(1, 1, 2, 10)
	cp := orig.Clone()
	if err := cp.Advance(StatusDebitApplied); err != nil {
		t.Fatal(err)
	}
	if orig.Status != StatusPending {
		t.Fatalf("clone shares state with original: %s", orig.Status)
	}
}
