package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGameLocks_ReleasesEntries(t *testing.T) {
	locks := newGameLocks()
	id := uuid.New()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(id)
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, locks.size())
}

func TestGameLocks_IndependentGames(t *testing.T) {
	locks := newGameLocks()
	unlockA := locks.lock(uuid.New())
	unlockB := locks.lock(uuid.New())
	assert.Equal(t, 2, locks.size())
	unlockA()
	unlockB()
	assert.Equal(t, 0, locks.size())
}
