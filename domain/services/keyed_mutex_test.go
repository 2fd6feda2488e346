package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	t.Parallel()

	locks := NewKeyedMutex()

	const iterations = 200
	counter := 0
	var wg sync.WaitGroup

	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				locks.Lock(1, 100)
				counter++
				locks.Unlock(1, 100)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*iterations, counter)
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	locks := NewKeyedMutex()
	locks.Lock(1, 100)

	done := make(chan struct{})
	go func() {
		locks.Lock(1, 101)
		locks.Unlock(1, 101)
		locks.Lock(2, 100)
		locks.Unlock(2, 100)
		close(done)
	}()

	<-done // would deadlock if other keys shared the lock
	locks.Unlock(1, 100)
}

func TestKeyedMutex_EntriesAreReleased(t *testing.T) {
	t.Parallel()

	locks := NewKeyedMutex()
	locks.Lock(1, 100)
	locks.Unlock(1, 100)

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "released keys must not accumulate")
}
