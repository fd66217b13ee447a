package cache

import (
	"sync"

	"fincache/internal/models"
)

// keyLocks serializes ingestions per dataset key. Locks are created on
// first use and never released back, which is fine for the bounded
// number of dataset keys a single cache sees.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: map[string]*sync.Mutex{}}
}

// acquire locks the mutex for key and returns the unlock function.
func (k *keyLocks) acquire(key models.DatasetKey) func() {
	k.mu.Lock()
	lock, ok := k.locks[key.String()]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key.String()] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
