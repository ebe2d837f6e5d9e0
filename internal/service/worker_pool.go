package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"

	"github.com/hance08/bankcore/internal/metrics"
	"github.com/hance08/bankcore/internal/model"
)

// ErrPoolCancelled is returned by Run when the context ends before the queue drains.
var ErrPoolCancelled = errors.New("worker pool cancelled")

// Result is the outcome of one request handled by the pool.
type Result struct {
	TransactionID int64
	Outcome       model.Outcome
	Err           error
	Duration      time.Duration
	WorkerID      int
}

// PoolStats contains worker pool statistics.
type PoolStats struct {
	Name      string `json:"name"`
	Workers   int    `json:"workers"`
	Active    int64  `json:"active"`
	Completed int64  `json:"completed"`
	Rejected  int64  `json:"rejected"`
	Failed    int64  `json:"failed"`
	Pending   int    `json:"pending"`
}

// WorkerPool drains a shared queue of requests with a fixed number of workers.
// Workers exit when the queue is empty, so Run returns once all queued work
// has been attempted.
type WorkerPool struct {
	name    string
	workers int
	engine  Transferer
	logger  *pterm.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	queue   []*model.Request
	results []Result

	// Atomic counters for thread-safe statistics
	active    int64
	completed int64
	rejected  int64
	failed    int64
}

func NewWorkerPool(name string, workers int, engine Transferer, logger *pterm.Logger, m *metrics.Metrics) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{
		name:    name,
		workers: workers,
		engine:  engine,
		logger:  logger,
		metrics: m,
	}
}

// Enqueue adds requests to the back of the queue.
func (p *WorkerPool) Enqueue(reqs ...*model.Request) {
	p.mu.Lock()
	p.queue = append(p.queue, reqs...)
	p.mu.Unlock()
	p.updateGauges()
}

// Run starts the workers and blocks until the queue is drained or ctx is
// cancelled. Requests left in the queue after cancellation stay there.
func (p *WorkerPool) Run(ctx context.Context) error {
	p.logger.Info("worker pool started", p.logger.Args("pool", p.name, "workers", p.workers, "queued", p.pendingLen()))

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		id := i
		g.Go(func() error {
			return p.worker(ctx, id)
		})
	}
	err := g.Wait()

	stats := p.GetStats()
	p.logger.Info("worker pool finished", p.logger.Args(
		"pool", p.name,
		"completed", stats.Completed,
		"rejected", stats.Rejected,
		"failed", stats.Failed,
		"left", stats.Pending,
	))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPoolCancelled, err)
	}
	return nil
}

func (p *WorkerPool) worker(ctx context.Context, id int) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		req, ok := p.pop()
		if !ok {
			return nil
		}
		p.process(ctx, id, req)
	}
}

func (p *WorkerPool) pop() (*model.Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) == 0 {
		return nil, false
	}
	req := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return req, true
}

// process runs one transfer and records its result.
func (p *WorkerPool) process(ctx context.Context, workerID int, req *model.Request) {
	atomic.AddInt64(&p.active, 1)
	p.updateGauges()
	defer func() {
		atomic.AddInt64(&p.active, -1)
		p.updateGauges()
	}()

	start := time.Now()
	result := Result{TransactionID: req.TransactionID, WorkerID: workerID}

	// Panic recovery to prevent one request from crashing the entire pool
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("panic in transfer: %s", panicToString(r))
			result.Outcome = model.OutcomeFailed
			result.Duration = time.Since(start)
			p.logger.Error("transfer panicked", p.logger.Args("transaction", req.TransactionID, "worker", workerID, "panic", result.Err))
			p.record(result)
		}
	}()

	err := p.engine.Transfer(ctx, req)
	result.Err = err
	result.Outcome = model.OutcomeOf(err)
	result.Duration = time.Since(start)

	switch result.Outcome {
	case model.OutcomeApplied:
		p.logger.Debug("transfer applied", p.logger.Args("transaction", req.TransactionID, "from", req.From, "to", req.To, "amount", req.Amount, "worker", workerID))
	case model.OutcomeRejected:
		p.logger.Warn("transfer rejected", p.logger.Args("transaction", req.TransactionID, "worker", workerID, "reason", err))
	default:
		p.logger.Error("transfer failed", p.logger.Args("transaction", req.TransactionID, "worker", workerID, "status", req.Status, "error", err))
	}
	p.record(result)
}

func (p *WorkerPool) record(result Result) {
	switch result.Outcome {
	case model.OutcomeApplied:
		atomic.AddInt64(&p.completed, 1)
	case model.OutcomeRejected:
		atomic.AddInt64(&p.rejected, 1)
	default:
		atomic.AddInt64(&p.failed, 1)
	}

	p.mu.Lock()
	p.results = append(p.results, result)
	p.mu.Unlock()
}

// panicToString converts a recovered panic value to a string.
func panicToString(r any) string {
	switch v := r.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (p *WorkerPool) pendingLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

func (p *WorkerPool) updateGauges() {
	if p.metrics != nil {
		p.metrics.UpdateWorkerPool(atomic.LoadInt64(&p.active), p.pendingLen())
	}
}

// Results returns a copy of all results recorded so far, in completion order.
func (p *WorkerPool) Results() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Result(nil), p.results...)
}

// GetStats returns current worker pool statistics.
func (p *WorkerPool) GetStats() PoolStats {
	return PoolStats{
		Name:      p.name,
		Workers:   p.workers,
		Active:    atomic.LoadInt64(&p.active),
		Completed: atomic.LoadInt64(&p.completed),
		Rejected:  atomic.LoadInt64(&p.rejected),
		Failed:    atomic.LoadInt64(&p.failed),
		Pending:   p.pendingLen(),
	}
}
