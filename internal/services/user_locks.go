package services

import "sync"

// userLocks serializes mutating portfolio operations per user id. AddPosition
// is a read-modify-write; without the lock, concurrent adds for the same
// user/symbol lose updates, and a concurrent replace could interleave with an
// in-flight add. Different users never contend.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for a user and returns the unlock function
func (l *userLocks) Lock(userID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
