// Package journal is the append-only transaction log. The log, not the account
// table, is the recovery input: every balance change is appended here and made
// durable before the account store is touched.
package journal

import (
	"context"

	"github.com/hance08/bankcore/internal/model"
)

type Log interface {
	// Append returns only after rec is durable.
	Append(ctx context.Context, rec model.LogRecord) error
	// ReadAll returns every record in append order, oldest first.
	ReadAll(ctx context.Context) ([]model.LogRecord, error)
	// Clear drops all records. Operator use only.
	Clear(ctx context.Context) error
	Close() error
}
