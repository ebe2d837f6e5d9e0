package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hance08/bankcore/internal/model"
)

func TestAccountStoreLoadGet(t *testing.T) {
	repo := newTestStore(t, map[int64]int64{1: 100, 2: 0})
	s := NewAccountStore(repo)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	acc, err := s.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if acc.Balance != 100 {
		t.Errorf("balance=%d want 100", acc.Balance)
	}

	if _, err := s.Get(9); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("Get(9) err=%v, want ErrAccountNotFound", err)
	}

	want := []model.Account{{ID: 1, Balance: 100}, {ID: 2, Balance: 0}}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Errorf("Snapshot mismatch (-want +got):\n%s", diff)
	}
	if s.Total() != 100 {
		t.Errorf("Total=%d want 100", s.Total())
	}
}

func TestAccountStoreSetBalanceValidation(t *testing.T) {
	s := NewAccountStore(newTestStore(t, map[int64]int64{1: 10}))
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := s.SetBalance(1, -1); !errors.Is(err, model.ErrNegativeBalance) {
		t.Errorf("err=%v, want ErrNegativeBalance", err)
	}
	if err := s.SetBalance(2, 5); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("err=%v, want ErrAccountNotFound", err)
	}
}

func TestAccountStoreSyncPersists(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t, map[int64]int64{1: 100, 2: 0})
	s := NewAccountStore(repo)
	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}

	if err := s.SetBalance(1, 40); err != nil {
		t.Fatal(err)
	}
	acc, _ := repo.GetAccountByID(ctx, 1)
	if acc.Balance != 100 {
		t.Fatalf("SetBalance reached the database before Sync: %d", acc.Balance)
	}

	if err := s.Sync(ctx); err != nil {
		t.Fatal(err)
	}
	acc, _ = repo.GetAccountByID(ctx, 1)
	if acc.Balance != 40 {
		t.Fatalf("persisted=%d want 40", acc.Balance)
	}

	// a fresh store sees the synced value
	reloaded := NewAccountStore(repo)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := reloaded.Get(1); got.Balance != 40 {
		t.Fatalf("reloaded=%d want 40", got.Balance)
	}
}

func TestAccountStoreSyncFailureKeepsChangesPending(t *testing.T) {
	ctx := context.Background()
	repo := &flakyRepo{Repository: newTestStore(t, map[int64]int64{1: 100})}
	s := NewAccountStore(repo)
	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}

	if err := s.SetBalance(1, 60); err != nil {
		t.Fatal(err)
	}
	repo.failTx.Store(true)
	if err := s.Sync(ctx); !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("Sync err=%v, want ErrStoreUnavailable", err)
	}

	repo.failTx.Store(false)
	if err := s.Sync(ctx); err != nil {
		t.Fatal(err)
	}
	acc, _ := repo.GetAccountByID(ctx, 1)
	if acc.Balance != 60 {
		t.Fatalf("retried sync persisted %d, want 60", acc.Balance)
	}
}

func TestAccountLocksOrderIndependent(t *testing.T) {
	locks := NewAccountLocks()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			unlock := locks.Lock(1, 2)
			unlock()
		}
		close(done)
	}()
	for i := 0; i < 1000; i++ {
		unlock := locks.Lock(2, 1)
		unlock()
	}
	<-done

	// the same id twice must not self-deadlock
	unlock := locks.Lock(3, 3)
	unlock()
}
