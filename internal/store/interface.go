package store

import (
	"context"

	"github.com/hance08/bankcore/internal/model"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, id, balance int64) error
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)
	GetAllAccounts(ctx context.Context) ([]*model.Account, error)
	UpdateBalances(ctx context.Context, balances map[int64]int64) error
}

type LogRepository interface {
	AppendLogRecord(ctx context.Context, rec model.LogRecord) (int64, error)
	GetAllLogRecords(ctx context.Context) ([]model.LogRecord, error)
	GetRecentLogRecords(ctx context.Context, limit int) ([]model.LogRecord, error)
	CountLogRecords(ctx context.Context) (int64, error)
	ClearLog(ctx context.Context) error
}

type Repository interface {
	AccountRepository
	LogRepository

	ExecTx(ctx context.Context, fn func(Repository) error) error
	Close() error
}
