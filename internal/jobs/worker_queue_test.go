package jobs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ivanachess/internal/worker"
)

type stubReconciler struct{ calls chan uuid.UUID }

func (s stubReconciler) Reconcile(_ context.Context, id uuid.UUID) (bool, error) {
	s.calls <- id
	return false, nil
}

type stubLister struct{ ids []uuid.UUID }

func (s stubLister) ListIDs(context.Context) ([]uuid.UUID, error) { return s.ids, nil }

type stubMatcher struct{ calls chan struct{} }

func (s stubMatcher) MatchWaiting(context.Context) (int, error) {
	s.calls <- struct{}{}
	return 0, nil
}

func TestWorkerQueue_Dispatch(t *testing.T) {
	pool := worker.NewPool(1, 8)
	pool.Start(context.Background())
	defer pool.Stop()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	rec := stubReconciler{calls: make(chan uuid.UUID, 4)}
	q := NewWorkerQueue(pool, stubLister{ids: ids}, rec)

	require.NoError(t, q.EnqueueReconcile(ids[0]))
	assert.Equal(t, ids[0], <-rec.calls)

	require.NoError(t, q.EnqueueReconcileAll())
	assert.Equal(t, ids[0], <-rec.calls)
	assert.Equal(t, ids[1], <-rec.calls)
}

func TestWorkerQueue_Matchmaking(t *testing.T) {
	pool := worker.NewPool(1, 8)
	pool.Start(context.Background())
	defer pool.Stop()

	q := NewWorkerQueue(pool, stubLister{}, stubReconciler{})
	assert.ErrorIs(t, q.EnqueueMatchmaking(), errNoMatcher)

	m := stubMatcher{calls: make(chan struct{}, 1)}
	q.SetMatcher(m)
	require.NoError(t, q.EnqueueMatchmaking())
	<-m.calls
}

var _ JobQueue = (*WorkerQueue)(nil)
