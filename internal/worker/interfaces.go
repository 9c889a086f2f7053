package worker

import (
	"context"

	"github.com/google/uuid"
)

// These interfaces let jobs call into services without importing them.

// GameReconciler rewrites a stored snapshot from a replay of the move log.
type GameReconciler interface {
	Reconcile(ctx context.Context, id uuid.UUID) (bool, error)
}

// GameLister lists every stored game id.
type GameLister interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Matcher pairs waiting matchmaking tickets into games.
type Matcher interface {
	MatchWaiting(ctx context.Context) (int, error)
}
