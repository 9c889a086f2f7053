package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ivanachess/internal/worker"
)

type funcJob struct {
	name string
	run  func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.run(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := worker.NewPool(3, 16)
	pool.Start(context.Background())
	defer pool.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ran := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		err := pool.Submit(funcJob{name: "count", run: func(context.Context) error {
			defer wg.Done()
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		}})
		require.NoError(t, err)
	}
	wg.Wait()
	assert.Equal(t, 10, ran)
}

func TestPool_FailingAndPanickingJobsDoNotKillWorkers(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	done := make(chan struct{})
	require.NoError(t, pool.Submit(funcJob{name: "fail", run: func(context.Context) error { return errors.New("boom") }}))
	require.NoError(t, pool.Submit(funcJob{name: "panic", run: func(context.Context) error { panic("boom") }}))
	require.NoError(t, pool.Submit(funcJob{name: "ok", run: func(context.Context) error {
		close(done)
		return nil
	}}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive failing jobs")
	}
}

func TestPool_SubmitWhenFull(t *testing.T) {
	// Not started: nothing drains the queue.
	pool := worker.NewPool(1, 1)
	noop := funcJob{name: "noop", run: func(context.Context) error { return nil }}

	require.NoError(t, pool.Submit(noop))
	assert.ErrorIs(t, pool.Submit(noop), worker.ErrQueueFull)
	assert.Equal(t, 1, pool.QueueSize())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	err := pool.Submit(funcJob{name: "late", run: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}
