package service

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/model"
)

// BalanceReader looks up the current, possibly stale, balance of an account.
type BalanceReader interface {
	Get(id int64) (model.Account, error)
}

type SkippedRecord struct {
	Record model.LogRecord
	Reason string
}

// RecoveryResult partitions the pending requests after a crash. Each list
// keeps the order of the input.
type RecoveryResult struct {
	// Repairs were debited but not credited and must be resumed before any
	// new work starts.
	Repairs []*model.Request
	// Pending never reached the store and run from the start.
	Pending []*model.Request
	// Completed holds the ids of requests that need no further work.
	Completed []int64
	Skipped   []SkippedRecord
}

// Reconciler works out how far each request progressed before the last stop
// by walking the log backwards against the account balances.
type Reconciler struct {
	accounts BalanceReader
	logger   *pterm.Logger
}

func NewReconciler(accounts BalanceReader, logger *pterm.Logger) *Reconciler {
	return &Reconciler{accounts: accounts, logger: logger}
}

// Reconcile classifies requests against records (oldest first). The inputs are
// not modified; the requests in the result are copies.
//
// Walking from the newest record, an account whose record matches its current
// balance is confirmed: every older record touching it has been applied.
// A confirmed account lets older records of the same transaction be decided
// without looking at the balance again.
func (r *Reconciler) Reconcile(records []model.LogRecord, requests []*model.Request) (*RecoveryResult, error) {
	byID := make(map[int64]*model.Request, len(requests))
	order := make([]*model.Request, 0, len(requests))
	for _, req := range requests {
		if _, dup := byID[req.TransactionID]; dup {
			return nil, fmt.Errorf("duplicate transaction %d in requests: %w", req.TransactionID, model.ErrInvalidRequest)
		}
		if req.Status == model.StatusComplete {
			return nil, fmt.Errorf("transaction %d is already complete: %w", req.TransactionID, model.ErrInvalidTransition)
		}
		cp := req.Clone()
		byID[cp.TransactionID] = cp
		order = append(order, cp)
	}

	result := &RecoveryResult{}
	confirmed := make(map[int64]bool)
	done := make(map[int64]bool)

	skip := func(rec model.LogRecord, reason string) {
		r.logger.Warn("skipping log record", r.logger.Args(
			"transaction", rec.TransactionID,
			"account", rec.AccountID,
			"reason", reason,
		))
		result.Skipped = append(result.Skipped, SkippedRecord{Record: rec, Reason: reason})
	}
	complete := func(req *model.Request) {
		done[req.TransactionID] = true
		delete(byID, req.TransactionID)
	}

	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]

		req, ok := byID[rec.TransactionID]
		if !ok {
			// older leg of a request already found complete
			if !done[rec.TransactionID] {
				skip(rec, "unknown transaction")
			}
			continue
		}

		isDest := rec.AccountID == req.To
		isSource := rec.AccountID == req.From
		if !isDest && !isSource {
			skip(rec, "account is not part of the transaction")
			continue
		}

		if confirmed[rec.AccountID] {
			if isDest {
				confirmed[req.From] = true
				complete(req)
			} else if err := req.Advance(model.StatusDebitApplied); err != nil {
				return nil, err
			}
			continue
		}

		acc, err := r.accounts.Get(rec.AccountID)
		if err != nil {
			skip(rec, "unknown account")
			continue
		}

		switch {
		case isDest && rec.PostBalance == acc.Balance:
			confirmed[req.From] = true
			confirmed[req.To] = true
			complete(req)
		case isDest && rec.PreBalance == acc.Balance:
			confirmed[req.From] = true
			if err := req.Advance(model.StatusDebitApplied); err != nil {
				return nil, err
			}
		case isSource && rec.PostBalance == acc.Balance:
			confirmed[req.From] = true
			if err := req.Advance(model.StatusDebitApplied); err != nil {
				return nil, err
			}
		}
	}

	for _, req := range order {
		switch {
		case done[req.TransactionID]:
			result.Completed = append(result.Completed, req.TransactionID)
		case req.Status == model.StatusDebitApplied:
			result.Repairs = append(result.Repairs, req)
		default:
			result.Pending = append(result.Pending, req)
		}
	}

	r.logger.Info("recovery classified requests", r.logger.Args(
		"records", len(records),
		"repairs", len(result.Repairs),
		"pending", len(result.Pending),
		"completed", len(result.Completed),
		"skipped", len(result.Skipped),
	))
	return result, nil
}
