package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vytor/ivanachess/internal/logger"
)

// ReconcileGameJob brings the snapshot of one game back in line with its
// move log.
type ReconcileGameJob struct {
	Reconciler GameReconciler
	GameID     uuid.UUID
}

func (j *ReconcileGameJob) Name() string { return "reconcile_game" }

func (j *ReconcileGameJob) Run(ctx context.Context) error {
	_, err := j.Reconciler.Reconcile(ctx, j.GameID)
	return err
}

// ReconcileAllJob reconciles every stored game, one after the other. A game
// that fails is logged and skipped.
type ReconcileAllJob struct {
	Lister     GameLister
	Reconciler GameReconciler
}

func (j *ReconcileAllJob) Name() string { return "reconcile_all" }

func (j *ReconcileAllJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ids, err := j.Lister.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	log.Info("reconciling %d games", len(ids))

	var fixed, failed int
	for _, id := range ids {
		if ctx.Err() != nil {
			log.Warn("reconcile cancelled: %v", ctx.Err())
			return ctx.Err()
		}
		changed, err := j.Reconciler.Reconcile(ctx, id)
		if err != nil {
			log.WithGame(id).Error("failed to reconcile: %v", err)
			failed++
			continue
		}
		if changed {
			fixed++
		}
	}

	log.Info("reconcile done: games=%d, fixed=%d, failed=%d", len(ids), fixed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d games failed to reconcile", failed, len(ids))
	}
	return nil
}

// MatchmakingJob pairs whoever is waiting in the matchmaking queue.
type MatchmakingJob struct {
	Matcher Matcher
}

func (j *MatchmakingJob) Name() string { return "matchmaking" }

func (j *MatchmakingJob) Run(ctx context.Context) error {
	n, err := j.Matcher.MatchWaiting(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.FromContext(ctx).Info("created %d games from matchmaking", n)
	}
	return nil
}
