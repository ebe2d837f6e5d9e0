package service

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/journal"
	"github.com/hance08/bankcore/internal/metrics"
	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/store"
)

type Config struct {
	Workers    int
	Concurrent bool
}

type Service struct {
	Account  *AccountService
	Accounts *AccountStore
	Engine   *TransferEngine
	Log      journal.Log

	reconciler *Reconciler
	logger     *pterm.Logger
	metrics    *metrics.Metrics
	config     Config
}

func NewService(repo store.Repository, log journal.Log, cfg Config, logger *pterm.Logger, m *metrics.Metrics) *Service {
	accounts := NewAccountStore(repo)
	return &Service{
		Account:    NewAccountService(repo),
		Accounts:   accounts,
		Engine:     NewTransferEngine(accounts, log, logger, m),
		Log:        log,
		reconciler: NewReconciler(accounts, logger),
		logger:     logger,
		metrics:    m,
		config:     cfg,
	}
}

// SetWorkers overrides the worker settings for the next Run.
func (s *Service) SetWorkers(workers int, concurrent bool) {
	s.config.Workers = workers
	s.config.Concurrent = concurrent
}

// RunReport summarises one startup-to-exit run.
type RunReport struct {
	Before   []model.Account
	After    []model.Account
	Recovery *RecoveryResult
	Repaired []Result
	Results  []Result
	Stats    PoolStats
}

// Failed counts the repairs and new requests that ended in an engine failure.
func (r *RunReport) Failed() int {
	n := int(r.Stats.Failed)
	for _, res := range r.Repaired {
		if res.Outcome == model.OutcomeFailed {
			n++
		}
	}
	return n
}

// Recover loads the account table and the log and classifies requests
// without applying anything.
func (s *Service) Recover(ctx context.Context, requests []*model.Request) (*RecoveryResult, error) {
	if err := s.Accounts.Load(ctx); err != nil {
		return nil, err
	}
	records, err := s.Log.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction log: %w", err)
	}

	result, err := s.reconciler.Reconcile(records, requests)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordRecovery(len(result.Completed), len(result.Repairs), len(result.Pending), len(result.Skipped))
	return result, nil
}

// Run recovers, resumes every interrupted request in order and then processes
// the remaining requests, concurrently when configured.
func (s *Service) Run(ctx context.Context, requests []*model.Request) (*RunReport, error) {
	recovery, err := s.Recover(ctx, requests)
	if err != nil {
		return nil, err
	}

	report := &RunReport{
		Before:   s.Accounts.Snapshot(),
		Recovery: recovery,
	}

	// repairs finish before any new request may touch the same accounts
	for _, req := range recovery.Repairs {
		if err := ctx.Err(); err != nil {
			report.After = s.Accounts.Snapshot()
			return report, fmt.Errorf("repairs interrupted: %w", err)
		}
		err := s.Engine.Transfer(ctx, req)
		report.Repaired = append(report.Repaired, Result{
			TransactionID: req.TransactionID,
			Outcome:       model.OutcomeOf(err),
			Err:           err,
		})
		if err != nil {
			s.logger.Error("repair failed", s.logger.Args("transaction", req.TransactionID, "status", req.Status, "error", err))
			continue
		}
		s.logger.Info("repaired interrupted transfer", s.logger.Args("transaction", req.TransactionID))
	}

	workers := s.config.Workers
	if !s.config.Concurrent {
		workers = 1
	}
	pool := NewWorkerPool("transfers", workers, s.Engine, s.logger, s.metrics)
	pool.Enqueue(recovery.Pending...)
	runErr := pool.Run(ctx)

	report.Results = pool.Results()
	report.Stats = pool.GetStats()
	report.After = s.Accounts.Snapshot()
	return report, runErr
}
