package jobs

import (
	"errors"

	"github.com/google/uuid"
	"github.com/vytor/ivanachess/internal/worker"
)

var errNoMatcher = errors.New("no matcher configured")

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool       *worker.Pool
	lister     worker.GameLister
	reconciler worker.GameReconciler
	matcher    worker.Matcher
}

// NewWorkerQueue creates a new WorkerQueue implementation. The matcher is
// usually set afterwards with SetMatcher, since the matchmaking service
// itself needs the queue.
func NewWorkerQueue(pool *worker.Pool, lister worker.GameLister, reconciler worker.GameReconciler) *WorkerQueue {
	return &WorkerQueue{
		pool:       pool,
		lister:     lister,
		reconciler: reconciler,
	}
}

// SetMatcher sets the target of matchmaking jobs.
func (q *WorkerQueue) SetMatcher(m worker.Matcher) {
	q.matcher = m
}

func (q *WorkerQueue) EnqueueReconcile(gameID uuid.UUID) error {
	return q.pool.Submit(&worker.ReconcileGameJob{
		Reconciler: q.reconciler,
		GameID:     gameID,
	})
}

func (q *WorkerQueue) EnqueueReconcileAll() error {
	return q.pool.Submit(&worker.ReconcileAllJob{
		Lister:     q.lister,
		Reconciler: q.reconciler,
	})
}

func (q *WorkerQueue) EnqueueMatchmaking() error {
	if q.matcher == nil {
		return errNoMatcher
	}
	return q.pool.Submit(&worker.MatchmakingJob{Matcher: q.matcher})
}
