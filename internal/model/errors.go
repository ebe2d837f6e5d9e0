package model

import "errors"

var (
	// ErrInsufficientFunds is a business rejection; it is never retried.
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidRequest    = errors.New("invalid transfer request")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNegativeBalance   = errors.New("balance cannot be negative")
	ErrBalanceOverflow   = errors.New("balance overflow")

	// ErrStoreUnavailable and ErrLogWriteFailed abort the in-flight transfer
	// without advancing its status.
	ErrStoreUnavailable = errors.New("account store unavailable")
	ErrLogWriteFailed   = errors.New("transaction log write failed")
)
