package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownGate_BlocksWithinWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gate := NewCooldownGate()
	gate.now = func() time.Time { return now }

	assert.True(t, gate.CanGainXP(1, 100, 1000), "first grant always passes")
	assert.False(t, gate.CanGainXP(1, 100, 1000), "immediate retry is blocked")

	now = now.Add(999 * time.Millisecond)
	assert.False(t, gate.CanGainXP(1, 100, 1000), "still inside the window")

	now = now.Add(1 * time.Millisecond)
	assert.True(t, gate.CanGainXP(1, 100, 1000), "window elapsed")
}

func TestCooldownGate_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	gate := NewCooldownGate()

	assert.True(t, gate.CanGainXP(1, 100, 60_000))
	assert.True(t, gate.CanGainXP(1, 101, 60_000), "different user, own window")
	assert.True(t, gate.CanGainXP(2, 100, 60_000), "same user in another guild, own window")
	assert.False(t, gate.CanGainXP(1, 100, 60_000))
}

func TestCooldownGate_ZeroCooldownAlwaysPasses(t *testing.T) {
	t.Parallel()

	gate := NewCooldownGate()

	for i := 0; i < 5; i++ {
		assert.True(t, gate.CanGainXP(1, 100, 0))
	}
}

func TestCooldownGate_ConcurrentCallsGrantOnce(t *testing.T) {
	t.Parallel()

	gate := NewCooldownGate()

	const workers = 32
	var wg sync.WaitGroup
	results := make(chan bool, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- gate.CanGainXP(1, 100, 60_000)
		}()
	}
	wg.Wait()
	close(results)

	granted := 0
	for ok := range results {
		if ok {
			granted++
		}
	}
	assert.Equal(t, 1, granted, "exactly one concurrent caller may pass the gate")
}
