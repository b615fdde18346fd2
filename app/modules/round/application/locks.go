package roundservice

import "sync"

// roundLocks serializes mutations per round id while letting distinct rounds proceed
// concurrently. Entries are dropped once no caller holds or waits on them.
type roundLocks struct {
	mu    sync.Mutex
	locks map[string]*roundLock
}

type roundLock struct {
	mu   sync.Mutex
	refs int
}

func newRoundLocks() *roundLocks {
	return &roundLocks{locks: make(map[string]*roundLock)}
}

// lock blocks until the caller holds the round's lock and returns the release func.
func (l *roundLocks) lock(roundID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[roundID]
	if !ok {
		entry = &roundLock{}
		l.locks[roundID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, roundID)
		}
		l.mu.Unlock()
	}
}

func (l *roundLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
