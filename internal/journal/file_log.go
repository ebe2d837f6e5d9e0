package journal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/ingest"
	"github.com/hance08/bankcore/internal/model"
)

// FileLog writes one "<tx> <account> <pre> <post>" line per record and fsyncs
// after every append. A record exists only once its newline is on disk, so an
// unterminated tail left by a crash mid-write is discarded.
type FileLog struct {
	mu     sync.Mutex
	path   string
	f      logFile
	logger *pterm.Logger

	// set when a failed append could not be rolled back
	broken error
}

// logFile is the part of *os.File the log writes through.
type logFile interface {
	io.WriteSeeker
	io.StringWriter
	Truncate(size int64) error
	Sync() error
	Close() error
}

func OpenFileLog(path string, logger *pterm.Logger) (*FileLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("can not create log directory: %w", err)
	}

	l := &FileLog{path: path, logger: logger}
	if err := l.truncateTornTail(); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	l.f = f
	return l, nil
}

func (l *FileLog) truncateTornTail() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read log file %s: %w", l.path, err)
	}
	if len(data) == 0 || data[len(data)-1] == '\n' {
		return nil
	}

	keep := bytes.LastIndexByte(data, '\n') + 1
	l.logger.Warn("discarding torn log tail", l.logger.Args(
		"path", l.path,
		"bytes", len(data)-keep,
	))
	if err := os.Truncate(l.path, int64(keep)); err != nil {
		return fmt.Errorf("failed to truncate torn log tail: %w", err)
	}
	return nil
}

func (l *FileLog) Append(ctx context.Context, rec model.LogRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.broken != nil {
		return fmt.Errorf("%w: log needs repair: %v", model.ErrLogWriteFailed, l.broken)
	}

	size, err := l.f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrLogWriteFailed, err)
	}

	if _, err := l.f.WriteString(rec.String() + "\n"); err != nil {
		return l.rollback(size, fmt.Errorf("%w: %v", model.ErrLogWriteFailed, err))
	}
	if err := l.f.Sync(); err != nil {
		return l.rollback(size, fmt.Errorf("%w: sync: %v", model.ErrLogWriteFailed, err))
	}
	return nil
}

// rollback cuts the file back to size so a partial or unsynced line never
// precedes the next record. Callers hold mu.
func (l *FileLog) rollback(size int64, cause error) error {
	if err := l.f.Truncate(size); err != nil {
		l.broken = err
		l.logger.Error("transaction log left with a partial record", l.logger.Args(
			"path", l.path,
			"size", size,
			"error", err,
		))
		return fmt.Errorf("%w (truncate: %v)", cause, err)
	}
	if err := l.f.Sync(); err != nil {
		l.broken = err
		return fmt.Errorf("%w (truncate sync: %v)", cause, err)
	}
	return cause
}

func (l *FileLog) ReadAll(ctx context.Context) ([]model.LogRecord, error) {
	l.mu.Lock()
	data, err := os.ReadFile(l.path)
	l.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read log file %s: %w", l.path, err)
	}

	if n := len(data); n > 0 && data[n-1] != '\n' {
		data = data[:bytes.LastIndexByte(data, '\n')+1]
	}

	var records []model.LogRecord
	for i, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		vals, err := ingest.ParseFields(string(line), 4)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.path, i+1, err)
		}
		records = append(records, model.LogRecord{
			Seq:           int64(len(records) + 1),
			TransactionID: vals[0],
			AccountID:     vals[1],
			PreBalance:    vals[2],
			PostBalance:   vals[3],
		})
	}
	return records, nil
}

func (l *FileLog) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.f.Truncate(0); err != nil {
		return fmt.Errorf("failed to clear log file: %w", err)
	}
	if err := l.f.Sync(); err != nil {
		return err
	}
	l.broken = nil
	return nil
}

func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
