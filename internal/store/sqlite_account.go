package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "github.com/mattn/go-sqlite3"

	"github.com/hance08/bankcore/internal/model"
)

func (s *Store) CreateAccount(ctx context.Context, id, balance int64) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO accounts (id, balance, updated_at)
        VALUES (?, ?, ?);
    `, id, balance, time.Now().Unix())

	if err != nil {
		var sqliteErr sqlite.Error
		if errors.As(err, &sqliteErr) {
			if sqliteErr.ExtendedCode == sqlite.ErrConstraintPrimaryKey || sqliteErr.ExtendedCode == sqlite.ErrConstraintUnique {
				return fmt.Errorf("failed to create account %d: %w", id, ErrAccountExists)
			}
			if sqliteErr.Code == sqlite.ErrConstraint {
				return fmt.Errorf("failed to create account %d: %w", id, ErrConstraintViolation)
			}
		}
		return fmt.Errorf("failed to executing SQL insertion : %w", err)
	}

	return nil
}

func (s *Store) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, balance FROM accounts WHERE id = ?", id)

	acc := &model.Account{}
	if err := row.Scan(&acc.ID, &acc.Balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account with ID %d: %w", id, err)
	}

	return acc, nil
}

func (s *Store) GetAllAccounts(ctx context.Context) ([]*model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, balance
        FROM accounts
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var accounts []*model.Account
	for rows.Next() {
		acc := &model.Account{}
		if err := rows.Scan(&acc.ID, &acc.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

// UpdateBalances overwrites the balance of every listed account.
// The caller wraps it in ExecTx so that all balances land in one commit.
func (s *Store) UpdateBalances(ctx context.Context, balances map[int64]int64) error {
	stmt, err := s.db.PrepareContext(ctx, `
        UPDATE accounts
        SET balance = ?, updated_at = ?
        WHERE id = ?
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	now := time.Now().Unix()
	for id, balance := range balances {
		result, err := stmt.ExecContext(ctx, balance, now, id)
		if err != nil {
			var sqliteErr sqlite.Error
			if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite.ErrConstraint {
				return fmt.Errorf("failed to update account %d: %w", id, ErrConstraintViolation)
			}
			return fmt.Errorf("failed to update account %d: %w", id, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("account with ID %d: %w", id, ErrRecordNotFound)
		}
	}

	return nil
}
