package store

import "errors"

// Errors returned by the SQLite repository. Driver errors are mapped onto
// them by sqlite3 error code so callers can match with errors.Is.
var (
	// ErrAccountExists is returned when an account id is already taken.
	ErrAccountExists = errors.New("account already exists")

	// ErrRecordNotFound is returned for a missing account row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrConstraintViolation is returned when a CHECK constraint rejects a
	// row, such as a negative balance.
	ErrConstraintViolation = errors.New("database constraint violation")
)
