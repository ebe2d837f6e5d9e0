package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/journal"
	"github.com/hance08/bankcore/internal/metrics"
	"github.com/hance08/bankcore/internal/model"
)

// Transferer runs one transfer request to completion or returns why it could not.
type Transferer interface {
	Transfer(ctx context.Context, req *model.Request) error
}

// TransferEngine applies a request as two legs, debit then credit. Each leg
// is appended to the log before the balance changes, and the balance is synced
// before the request status advances.
type TransferEngine struct {
	accounts *AccountStore
	log      journal.Log
	locks    *AccountLocks
	logger   *pterm.Logger
	metrics  *metrics.Metrics
}

func NewTransferEngine(accounts *AccountStore, log journal.Log, logger *pterm.Logger, m *metrics.Metrics) *TransferEngine {
	return &TransferEngine{
		accounts: accounts,
		log:      log,
		locks:    NewAccountLocks(),
		logger:   logger,
		metrics:  m,
	}
}

// Transfer returns nil once req is Complete. A business rejection wraps
// model.ErrInsufficientFunds and leaves everything untouched. Any other error
// leaves req at the status it had before the failing leg; a leg whose balance
// could not be synced is still applied in memory.
func (e *TransferEngine) Transfer(ctx context.Context, req *model.Request) error {
	start := time.Now()
	err := e.transfer(ctx, req)
	e.metrics.RecordTransfer(model.OutcomeOf(err), time.Since(start))
	return err
}

func (e *TransferEngine) transfer(ctx context.Context, req *model.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.Status == model.StatusComplete {
		return fmt.Errorf("transaction %d is already complete: %w", req.TransactionID, model.ErrInvalidTransition)
	}

	unlock := e.locks.Lock(req.From, req.To)
	defer unlock()

	src, err := e.accounts.Get(req.From)
	if err != nil {
		return fmt.Errorf("transaction %d source: %w", req.TransactionID, err)
	}
	if _, err := e.accounts.Get(req.To); err != nil {
		return fmt.Errorf("transaction %d destination: %w", req.TransactionID, err)
	}

	if req.Status == model.StatusPending {
		if src.Balance < req.Amount {
			return fmt.Errorf("transaction %d: account %d has %d, needs %d: %w",
				req.TransactionID, src.ID, src.Balance, req.Amount, model.ErrInsufficientFunds)
		}
		if err := e.applyLeg(ctx, req.TransactionID, src, src.Balance-req.Amount, "debit"); err != nil {
			return err
		}
		if err := req.Advance(model.StatusDebitApplied); err != nil {
			return err
		}
	}

	// resumed requests skip the funds check; the debit is already durable
	dst, err := e.accounts.Get(req.To)
	if err != nil {
		return fmt.Errorf("transaction %d destination: %w", req.TransactionID, err)
	}
	if dst.Balance > math.MaxInt64-req.Amount {
		return fmt.Errorf("transaction %d: crediting %d to account %d: %w",
			req.TransactionID, req.Amount, dst.ID, model.ErrBalanceOverflow)
	}
	if err := e.applyLeg(ctx, req.TransactionID, dst, dst.Balance+req.Amount, "credit"); err != nil {
		return err
	}
	return req.Advance(model.StatusComplete)
}

func (e *TransferEngine) applyLeg(ctx context.Context, txID int64, acc model.Account, post int64, leg string) error {
	rec := model.LogRecord{
		TransactionID: txID,
		AccountID:     acc.ID,
		PreBalance:    acc.Balance,
		PostBalance:   post,
	}
	if err := e.log.Append(ctx, rec); err != nil {
		return fmt.Errorf("transaction %d %s: %w", txID, leg, err)
	}
	if err := e.accounts.SetBalance(acc.ID, post); err != nil {
		return fmt.Errorf("transaction %d %s: %w", txID, leg, err)
	}
	// The record is already durable: keep post in memory and dirty so the
	// account's next record chains from it and a later Sync persists it.
	if err := e.accounts.Sync(ctx); err != nil {
		e.logger.Warn("balance not persisted", e.logger.Args(
			"transaction", txID,
			"leg", leg,
			"account", acc.ID,
			"post", post,
			"error", err,
		))
		return fmt.Errorf("transaction %d %s: %w", txID, leg, err)
	}

	e.metrics.RecordLeg(leg)
	e.logger.Trace("leg applied", e.logger.Args(
		"transaction", txID,
		"leg", leg,
		"account", acc.ID,
		"pre", acc.Balance,
		"post", post,
	))
	return nil
}
