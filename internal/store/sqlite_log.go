package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hance08/bankcore/internal/model"
)

// AppendLogRecord inserts one record and returns its sequence number.
// Outside ExecTx the insert is its own (synchronous) commit.
func (s *Store) AppendLogRecord(ctx context.Context, rec model.LogRecord) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO transfer_log (transaction_id, account_id, pre_balance, post_balance)
        VALUES (?, ?, ?, ?)
        RETURNING seq;
    `, rec.TransactionID, rec.AccountID, rec.PreBalance, rec.PostBalance).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to insert log record (transaction %d, account %d): %w", rec.TransactionID, rec.AccountID, err)
	}

	return seq, nil
}

// GetAllLogRecords returns the whole log, oldest first.
func (s *Store) GetAllLogRecords(ctx context.Context) ([]model.LogRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT seq, transaction_id, account_id, pre_balance, post_balance
        FROM transfer_log
        ORDER BY seq
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query log records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanLogRecords(rows)
}

// GetRecentLogRecords returns up to limit records, newest first.
func (s *Store) GetRecentLogRecords(ctx context.Context, limit int) ([]model.LogRecord, error) {
	if limit <= 0 {
		limit = 100 // Default limit
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT seq, transaction_id, account_id, pre_balance, post_balance
        FROM transfer_log
        ORDER BY seq DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query log records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanLogRecords(rows)
}

func (s *Store) CountLogRecords(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transfer_log").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count log records: %w", err)
	}
	return count, nil
}

// ClearLog removes every record. Sequence numbers keep increasing afterwards.
func (s *Store) ClearLog(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM transfer_log"); err != nil {
		return fmt.Errorf("failed to clear log: %w", err)
	}
	return nil
}

func scanLogRecords(rows *sql.Rows) ([]model.LogRecord, error) {
	var records []model.LogRecord
	for rows.Next() {
		var rec model.LogRecord
		err := rows.Scan(
			&rec.Seq,
			&rec.TransactionID,
			&rec.AccountID,
			&rec.PreBalance,
			&rec.PostBalance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log records: %w", err)
	}
	return records, nil
}
