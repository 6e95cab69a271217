package service

import (
	"sync"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

// tripleLocks serializes ledger writes per (client, portfolio, security).
// Entries are reference counted and dropped when the last holder unlocks.
type tripleLocks struct {
	mu    sync.Mutex
	locks map[model.Triple]*tripleLock
}

type tripleLock struct {
	mu   sync.Mutex
	refs int
}

func newTripleLocks() *tripleLocks {
	return &tripleLocks{locks: make(map[model.Triple]*tripleLock)}
}

// lock blocks until the triple is free and returns the matching unlock.
func (l *tripleLocks) lock(key model.Triple) func() {
	l.mu.Lock()
	tl, ok := l.locks[key]
	if !ok {
		tl = &tripleLock{}
		l.locks[key] = tl
	}
	tl.refs++
	l.mu.Unlock()

	tl.mu.Lock()

	return func() {
		tl.mu.Unlock()

		l.mu.Lock()
		tl.refs--
		if tl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *tripleLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
