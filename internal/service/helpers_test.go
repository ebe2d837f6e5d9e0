package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/journal"
	"github.com/hance08/bankcore/internal/metrics"
	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/store"
	"github.com/hance08/bankcore/migrations"
)

func quietLogger() *pterm.Logger {
	return pterm.DefaultLogger.WithWriter(io.Discard)
}

func newTestStore(t *testing.T, balances map[int64]int64) *store.Store {
	t.Helper()

	s, err := store.NewStore(filepath.Join(t.TempDir(), "bank.db"), migrations.FS)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })

	for id, b := range balances {
		if err := s.CreateAccount(context.Background(), id, b); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

// flakyRepo fails every database transaction while failTx is set.
type flakyRepo struct {
	store.Repository
	failTx atomic.Bool
}

var errDiskFull = errors.New("database or disk is full")

func (f *flakyRepo) ExecTx(ctx context.Context, fn func(store.Repository) error) error {
	if f.failTx.Load() {
		return errDiskFull
	}
	return f.Repository.ExecTx(ctx, fn)
}

type engineFixture struct {
	repo     *store.Store
	log      journal.Log
	accounts *AccountStore
	engine   *TransferEngine
	metrics  *metrics.Metrics
}

func newEngineFixture(t *testing.T, balances map[int64]int64) *engineFixture {
	t.Helper()

	repo := newTestStore(t, balances)
	accounts := NewAccountStore(repo)
	if err := accounts.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	log := journal.NewSQLLog(repo)
	m := metrics.NewMetrics("test")

	return &engineFixture{
		repo:     repo,
		log:      log,
		accounts: accounts,
		engine:   NewTransferEngine(accounts, log, quietLogger(), m),
		metrics:  m,
	}
}

func (f *engineFixture) records(t *testing.T) []model.LogRecord {
	t.Helper()
	recs, err := f.log.ReadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return recs
}

func (f *engineFixture) balance(t *testing.T, id int64) int64 {
	t.Helper()
	acc, err := f.accounts.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	return acc.Balance
}

// persisted reads the balance straight from the database.
func (f *engineFixture) persisted(t *testing.T, id int64) int64 {
	t.Helper()
	acc, err := f.repo.GetAccountByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	return acc.Balance
}

// checkAccountChains fails if, for any account, a record's pre balance does
// not equal the post balance of that account's previous record.
func checkAccountChains(t *testing.T, records []model.LogRecord) {
	t.Helper()
	last := make(map[int64]model.LogRecord)
	for _, rec := range records {
		if prev, ok := last[rec.AccountID]; ok && prev.PostBalance != rec.PreBalance {
			t.Fatalf("account %d history broken: %v then %v", rec.AccountID, prev, rec)
		}
		last[rec.AccountID] = rec
	}
}
