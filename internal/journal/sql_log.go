package journal

import (
	"context"
	"fmt"
	"sync"

	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/store"
)

// SQLLog keeps the log in the transfer_log table of the bank database.
type SQLLog struct {
	mu   sync.Mutex
	repo store.LogRepository
}

func NewSQLLog(repo store.LogRepository) *SQLLog {
	return &SQLLog{repo: repo}
}

func (l *SQLLog) Append(ctx context.Context, rec model.LogRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.repo.AppendLogRecord(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", model.ErrLogWriteFailed, err)
	}
	return nil
}

func (l *SQLLog) ReadAll(ctx context.Context) ([]model.LogRecord, error) {
	return l.repo.GetAllLogRecords(ctx)
}

func (l *SQLLog) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.repo.ClearLog(ctx)
}

// Close is a no-op; the database is owned by the store.
func (l *SQLLog) Close() error {
	return nil
}
