package routing

import "sync"

// recordLocks serializes mutations per donation record. Two concurrent
// response signals for the same record must not both observe the
// pre-mutation state; across different records no ordering is enforced.
type recordLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newRecordLocks() *recordLocks {
	return &recordLocks{locks: make(map[uint]*sync.Mutex)}
}

// lock acquires the mutex for one record and returns its unlock func.
// Locks are never removed; the set of record IDs only grows as donations do.
func (r *recordLocks) lock(id uint) func() {
	r.mu.Lock()
	m, exists := r.locks[id]
	if !exists {
		m = &sync.Mutex{}
		r.locks[id] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}
