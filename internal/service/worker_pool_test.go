package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hance08/bankcore/internal/metrics"
	"github.com/hance08/bankcore/internal/model"
)

type transferFunc func(ctx context.Context, req *model.Request) error

func (f transferFunc) Transfer(ctx context.Context, req *model.Request) error {
	return f(ctx, req)
}

func requests(n int) []*model.Request {
	reqs := make([]*model.Request, n)
	for i := range reqs {
		reqs[i] = model.NewRequest(int64(i+1), 1, 2, 1)
	}
	return reqs
}

func TestNewWorkerPool(t *testing.T) {
	pool := NewWorkerPool("test", 0, transferFunc(nil), quietLogger(), nil)

	stats := pool.GetStats()
	if stats.Workers != 1 {
		t.Errorf("Expected 1 worker for non-positive count, got %d", stats.Workers)
	}
	if stats.Name != "test" {
		t.Errorf("Expected name 'test', got %s", stats.Name)
	}
}

func TestWorkerPoolDrainsQueue(t *testing.T) {
	var processed int64
	var mu sync.Mutex
	seen := make(map[int64]int)

	engine := transferFunc(func(ctx context.Context, req *model.Request) error {
		atomic.AddInt64(&processed, 1)
		mu.Lock()
		seen[req.TransactionID]++
		mu.Unlock()
		return nil
	})

	pool := NewWorkerPool("test", 8, engine, quietLogger(), metrics.NewMetrics("test"))
	pool.Enqueue(requests(100)...)
	if err := pool.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if processed != 100 {
		t.Fatalf("processed %d requests, want 100", processed)
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("request %d processed %d times", id, n)
		}
	}

	stats := pool.GetStats()
	want := PoolStats{Name: "test", Workers: 8, Completed: 100}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if len(pool.Results()) != 100 {
		t.Errorf("results=%d want 100", len(pool.Results()))
	}
}

func TestWorkerPoolClassifiesOutcomes(t *testing.T) {
	engine := transferFunc(func(ctx context.Context, req *model.Request) error {
		switch req.TransactionID {
		case 1:
			return nil
		case 2:
			return fmt.Errorf("tx 2: %w", model.ErrInsufficientFunds)
		case 3:
			return fmt.Errorf("tx 3: %w", model.ErrLogWriteFailed)
		default:
			panic("boom")
		}
	})

	pool := NewWorkerPool("test", 2, engine, quietLogger(), nil)
	pool.Enqueue(requests(4)...)
	if err := pool.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	results := pool.Results()
	sort.Slice(results, func(i, j int) bool { return results[i].TransactionID < results[j].TransactionID })

	wantOutcomes := []model.Outcome{model.OutcomeApplied, model.OutcomeRejected, model.OutcomeFailed, model.OutcomeFailed}
	for i, r := range results {
		if r.Outcome != wantOutcomes[i] {
			t.Errorf("tx %d outcome=%s want %s", r.TransactionID, r.Outcome, wantOutcomes[i])
		}
	}
	if results[3].Err == nil || results[3].Err.Error() != "panic in transfer: boom" {
		t.Errorf("panic result err=%v", results[3].Err)
	}

	stats := pool.GetStats()
	if stats.Completed != 1 || stats.Rejected != 1 || stats.Failed != 2 {
		t.Errorf("stats=%+v", stats)
	}
}

func TestWorkerPoolStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var processed int64
	engine := transferFunc(func(ctx context.Context, req *model.Request) error {
		if atomic.AddInt64(&processed, 1) == 3 {
			cancel()
		}
		return nil
	})

	pool := NewWorkerPool("test", 1, engine, quietLogger(), nil)
	pool.Enqueue(requests(10)...)

	err := pool.Run(ctx)
	if !errors.Is(err, ErrPoolCancelled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want ErrPoolCancelled wrapping context.Canceled", err)
	}
	if processed != 3 {
		t.Errorf("processed=%d want 3", processed)
	}
	if got := pool.GetStats().Pending; got != 7 {
		t.Errorf("pending=%d want 7", got)
	}
}

// TestWorkerCountDoesNotChangeResult runs the same disjoint transfers with
// different worker counts and expects identical final balances.
func TestWorkerCountDoesNotChangeResult(t *testing.T) {
	initial := map[int64]int64{}
	for id := int64(1); id <= 20; id++ {
		initial[id] = 100
	}
	build := func() []*model.Request {
		var reqs []*model.Request
		for i := int64(0); i < 10; i++ {
			reqs = append(reqs, model.NewRequest(i+1, 2*i+1, 2*i+2, 10+i))
		}
		return reqs
	}

	var want []model.Account
	for _, workers := range []int{1, 3, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			f := newEngineFixture(t, initial)
			pool := NewWorkerPool("test", workers, f.engine, quietLogger(), f.metrics)
			pool.Enqueue(build()...)
			if err := pool.Run(context.Background()); err != nil {
				t.Fatal(err)
			}

			got := f.accounts.Snapshot()
			if want == nil {
				want = got
				return
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("balances differ from single worker (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConcurrentTransfersConserveMoney(t *testing.T) {
	initial := map[int64]int64{1: 500, 2: 500, 3: 500, 4: 500}
	f := newEngineFixture(t, initial)

	var reqs []*model.Request
	for i := int64(0); i < 60; i++ {
		from := i%4 + 1
		to := (i*3+1)%4 + 1
		if from == to {
			to = from%4 + 1
		}
		reqs = append(reqs, model.NewRequest(i+1, from, to, 25+i%7))
	}

	pool := NewWorkerPool("test", 6, f.engine, quietLogger(), f.metrics)
	pool.Enqueue(reqs...)
	if err := pool.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if total := f.accounts.Total(); total != 2000 {
		t.Fatalf("total=%d want 2000", total)
	}
	for _, acc := range f.accounts.Snapshot() {
		if acc.Balance < 0 {
			t.Fatalf("account %d negative: %d", acc.ID, acc.Balance)
		}
		if p := f.persisted(t, acc.ID); p != acc.Balance {
			t.Errorf("account %d persisted=%d memory=%d", acc.ID, p, acc.Balance)
		}
	}

	records := f.records(t)
	checkAccountChains(t, records)
	if stats := pool.GetStats(); int(stats.Completed)*2 != len(records) {
		t.Errorf("%d applied transfers but %d records", stats.Completed, len(records))
	}
}

func BenchmarkWorkerPool(b *testing.B) {
	engine := transferFunc(func(ctx context.Context, req *model.Request) error { return nil })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool := NewWorkerPool("bench", 4, engine, quietLogger(), nil)
		pool.Enqueue(requests(1000)...)
		_ = pool.Run(context.Background())
	}
}
