package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSameKeySerializes(t *testing.T) {
	km := NewKeyedMutex()

	const n = 50
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock(7)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	require.Equal(t, n, counter)
}

func TestDifferentKeysDoNotBlockEachOther(t *testing.T) {
	km := NewKeyedMutex()

	unlockA := km.Lock(1)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock(2)
		unlockB()
		close(done)
	}()
	<-done
}

func TestUnlockAllowsReacquisition(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.Lock(3)
	unlock()
	unlock = km.Lock(3)
	unlock()
}
