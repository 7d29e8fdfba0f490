package utils

import "sync"

// KeyedMutex hands out one mutex per key so edits to the same order are
// serialized while different orders proceed concurrently. Mutexes are kept
// for the life of the process; the key space (order ids touched since start)
// stays small enough not to matter.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[uint]*sync.Mutex)}
}

// Lock blocks until the key's mutex is held and returns the unlock func.
func (k *KeyedMutex) Lock(key uint) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
