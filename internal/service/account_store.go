package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/store"
)

// BalanceRepository is the part of the store the account table needs.
type BalanceRepository interface {
	GetAllAccounts(ctx context.Context) ([]*model.Account, error)
	ExecTx(ctx context.Context, fn func(store.Repository) error) error
}

// AccountStore is the in-memory account table backed by the accounts table.
// SetBalance only changes memory; Sync makes every changed balance durable.
type AccountStore struct {
	repo BalanceRepository

	mu       sync.RWMutex
	balances map[int64]int64
	dirty    map[int64]struct{}

	// serialises Sync so a caller returning from Sync knows every earlier
	// SetBalance has been committed by it or by a concurrent Sync.
	syncMu sync.Mutex
}

func NewAccountStore(repo BalanceRepository) *AccountStore {
	return &AccountStore{
		repo:     repo,
		balances: make(map[int64]int64),
		dirty:    make(map[int64]struct{}),
	}
}

// Load replaces the in-memory table with the persisted accounts.
func (s *AccountStore) Load(ctx context.Context) error {
	accounts, err := s.repo.GetAllAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances = make(map[int64]int64, len(accounts))
	s.dirty = make(map[int64]struct{})
	for _, acc := range accounts {
		s.balances[acc.ID] = acc.Balance
	}
	return nil
}

func (s *AccountStore) Get(id int64) (model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balance, ok := s.balances[id]
	if !ok {
		return model.Account{}, fmt.Errorf("account %d: %w", id, model.ErrAccountNotFound)
	}
	return model.Account{ID: id, Balance: balance}, nil
}

func (s *AccountStore) SetBalance(id, balance int64) error {
	if balance < 0 {
		return fmt.Errorf("account %d: %d: %w", id, balance, model.ErrNegativeBalance)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.balances[id]; !ok {
		return fmt.Errorf("account %d: %w", id, model.ErrAccountNotFound)
	}
	s.balances[id] = balance
	s.dirty[id] = struct{}{}
	return nil
}

// Sync writes every changed balance in one database transaction and blocks
// until it is committed. On failure the changes stay pending for the next Sync.
func (s *AccountStore) Sync(ctx context.Context) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	s.mu.Lock()
	if len(s.dirty) == 0 {
		s.mu.Unlock()
		return nil
	}
	pending := make(map[int64]int64, len(s.dirty))
	for id := range s.dirty {
		pending[id] = s.balances[id]
	}
	s.dirty = make(map[int64]struct{})
	s.mu.Unlock()

	err := s.repo.ExecTx(ctx, func(r store.Repository) error {
		return r.UpdateBalances(ctx, pending)
	})
	if err != nil {
		s.mu.Lock()
		for id := range pending {
			s.dirty[id] = struct{}{}
		}
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}

// Snapshot returns every account ordered by id.
func (s *AccountStore) Snapshot() []model.Account {
	s.mu.RLock()
	out := make([]model.Account, 0, len(s.balances))
	for id, balance := range s.balances {
		out = append(out, model.Account{ID: id, Balance: balance})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Total is the sum of all balances.
func (s *AccountStore) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, b := range s.balances {
		total += b
	}
	return total
}
