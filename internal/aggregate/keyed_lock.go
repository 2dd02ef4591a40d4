package aggregate

import "sync"

// keyedLocks hands out one mutex per aggregate key. Locks are never released
// from the map; the key space is bounded by the number of beverages and users
// a deployment actually touches.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedLocks) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	keyLock, ok := k.locks[key]
	if !ok {
		keyLock = &sync.Mutex{}
		k.locks[key] = keyLock
	}
	k.mu.Unlock()

	keyLock.Lock()
	return keyLock.Unlock
}
