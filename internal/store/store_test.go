package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/migrations"
)

var cmpIgnoreSeq = cmpopts.IgnoreFields(model.LogRecord{}, "Seq")

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "bank.db"), migrations.FS)
	if err != nil {
		t.Fatalf("NewStore err=%v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetAccount(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.CreateAccount(ctx, 1, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateAccount(ctx, 2, 0); err != nil {
		t.Fatal(err)
	}

	acc, err := s.GetAccountByID(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if acc.Balance != 100 {
		t.Fatalf("balance=%d want=100", acc.Balance)
	}

	all, err := s.GetAllAccounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []*model.Account{{ID: 1, Balance: 100}, {ID: 2, Balance: 0}}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("GetAllAccounts mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateAccountErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.CreateAccount(ctx, 1, 10); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateAccount(ctx, 1, 20); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("duplicate id: err=%v, want ErrAccountExists", err)
	}
	if err := s.CreateAccount(ctx, 2, -1); !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("negative balance: err=%v, want ErrConstraintViolation", err)
	}
	if _, err := s.GetAccountByID(ctx, 99); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("missing account: err=%v, want ErrRecordNotFound", err)
	}
}

func TestUpdateBalancesInTx(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_ = s.CreateAccount(ctx, 1, 100)
	_ = s.CreateAccount(ctx, 2, 0)

	err := s.ExecTx(ctx, func(repo Repository) error {
		return repo.UpdateBalances(ctx, map[int64]int64{1: 70, 2: 30})
	})
	if err != nil {
		t.Fatal(err)
	}

	a, _ := s.GetAccountByID(ctx, 1)
	b, _ := s.GetAccountByID(ctx, 2)
	if a.Balance != 70 || b.Balance != 30 {
		t.Fatalf("balances a=%d b=%d want 70/30", a.Balance, b.Balance)
	}
}

func TestUpdateBalancesRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_ = s.CreateAccount(ctx, 1, 100)

	err := s.ExecTx(ctx, func(repo Repository) error {
		return repo.UpdateBalances(ctx, map[int64]int64{1: 50, 42: 10})
	})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("err=%v, want ErrRecordNotFound", err)
	}

	a, _ := s.GetAccountByID(ctx, 1)
	if a.Balance != 100 {
		t.Fatalf("balance=%d after rollback, want 100", a.Balance)
	}
}

func TestNestedExecTxRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.ExecTx(ctx, func(repo Repository) error {
		return repo.ExecTx(ctx, func(Repository) error { return nil })
	})
	if err == nil {
		t.Fatal("nested ExecTx should fail")
	}
}

func TestLogAppendAndRead(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	in := []model.LogRecord{
		{TransactionID: 1, AccountID: 1, PreBalance: 100, PostBalance: 70},
		{TransactionID: 1, AccountID: 2, PreBalance: 0, PostBalance: 30},
		{TransactionID: 2, AccountID: 2, PreBalance: 30, PostBalance: 20},
	}
	var lastSeq int64
	for _, rec := range in {
		seq, err := s.AppendLogRecord(ctx, rec)
		if err != nil {
			t.Fatal(err)
		}
		if seq <= lastSeq {
			t.Fatalf("seq %d not increasing after %d", seq, lastSeq)
		}
		lastSeq = seq
	}

	all, err := s.GetAllLogRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, all, cmpIgnoreSeq); diff != "" {
		t.Fatalf("GetAllLogRecords mismatch (-want +got):\n%s", diff)
	}

	recent, err := s.GetRecentLogRecords(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].TransactionID != 2 {
		t.Fatalf("recent=%v, want newest first", recent)
	}

	count, err := s.CountLogRecords(ctx)
	if err != nil || count != 3 {
		t.Fatalf("count=%d err=%v want 3", count, err)
	}

	if err := s.ClearLog(ctx); err != nil {
		t.Fatal(err)
	}
	if count, _ := s.CountLogRecords(ctx); count != 0 {
		t.Fatalf("count=%d after clear", count)
	}
	seq, err := s.AppendLogRecord(ctx, in[0])
	if err != nil {
		t.Fatal(err)
	}
	if seq <= lastSeq {
		t.Fatalf("seq reused after clear: %d <= %d", seq, lastSeq)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bank.db")

	s, err := NewStore(path, migrations.FS)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.CreateAccount(ctx, 1, 100)
	_, _ = s.AppendLogRecord(ctx, model.LogRecord{TransactionID: 1, AccountID: 1, PreBalance: 100, PostBalance: 70})
	_ = s.Close()

	s, err = NewStore(path, migrations.FS)
	if err != nil {
		t.Fatalf("reopen err=%v", err)
	}
	defer s.Close()

	if acc, err := s.GetAccountByID(ctx, 1); err != nil || acc.Balance != 100 {
		t.Fatalf("acc=%v err=%v", acc, err)
	}
	if n, _ := s.CountLogRecords(ctx); n != 1 {
		t.Fatalf("log count=%d want 1", n)
	}
}
