package jobs

import "github.com/google/uuid"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueReconcile(gameID uuid.UUID) error
	EnqueueReconcileAll() error
	EnqueueMatchmaking() error
}
