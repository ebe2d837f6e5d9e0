package service

import (
	"sort"
	"sync"
)

// AccountLocks hands out one mutex per account id, created on first use.
type AccountLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewAccountLocks() *AccountLocks {
	return &AccountLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *AccountLocks) get(id int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// Lock acquires the locks of all ids in ascending order and returns the
// function that releases them. Duplicate ids are locked once.
func (l *AccountLocks) Lock(ids ...int64) (unlock func()) {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	held := make([]*sync.Mutex, 0, len(sorted))
	for i, id := range sorted {
		if i > 0 && id == sorted[i-1] {
			continue
		}
		m := l.get(id)
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
