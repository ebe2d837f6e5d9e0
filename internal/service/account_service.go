package service

import (
	"context"
	"fmt"

	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/store"
)

// AccountService manages the persisted account table outside of transfers.
type AccountService struct {
	repo store.Repository
}

func NewAccountService(repo store.Repository) *AccountService {
	return &AccountService{repo: repo}
}

func (as *AccountService) GetAllAccounts(ctx context.Context) ([]*model.Account, error) {
	return as.repo.GetAllAccounts(ctx)
}

func (as *AccountService) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	return as.repo.GetAccountByID(ctx, id)
}

func (as *AccountService) Open(ctx context.Context, id, balance int64) (*model.Account, error) {
	if balance < 0 {
		return nil, fmt.Errorf("account %d: %w", id, model.ErrNegativeBalance)
	}
	if err := as.repo.CreateAccount(ctx, id, balance); err != nil {
		return nil, err
	}
	return &model.Account{ID: id, Balance: balance}, nil
}

// Import creates all accounts in one transaction; nothing is created if any fails.
func (as *AccountService) Import(ctx context.Context, accounts []model.Account) error {
	return as.repo.ExecTx(ctx, func(r store.Repository) error {
		for _, acc := range accounts {
			if acc.Balance < 0 {
				return fmt.Errorf("account %d: %w", acc.ID, model.ErrNegativeBalance)
			}
			if err := r.CreateAccount(ctx, acc.ID, acc.Balance); err != nil {
				return err
			}
		}
		return nil
	})
}
