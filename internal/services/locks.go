package services

import (
	"sync"

	"github.com/google/uuid"
)

// gameLocks hands out one mutex per game id so that moves on the same game
// are validated and appended one at a time. Entries are dropped when the
// last holder unlocks.
type gameLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*gameLock
}

type gameLock struct {
	sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[uuid.UUID]*gameLock)}
}

// lock blocks until the caller owns id and returns the matching unlock.
func (l *gameLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &gameLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *gameLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
