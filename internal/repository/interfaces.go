package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/models"
)

// ErrConflict is returned by MoveRepository.Append when the slot for the
// move is already taken, meaning another writer got there first.
var ErrConflict = errors.New("move index already taken")

// ErrCorruptLog wraps errors about stored moves that cannot be read back
// into a log, such as a gap in the indexes or an undecodable row.
var ErrCorruptLog = errors.New("corrupt move log")

// GameRepository handles game metadata. Lookups of unknown games return
// sql.ErrNoRows.
type GameRepository interface {
	Create(ctx context.Context, game models.GameSummary) error
	// CreateWithMoves stores game, its PGN tags and its whole move log in
	// one transaction. Nothing is stored when any part fails.
	CreateWithMoves(ctx context.Context, game models.GameSummary, tags map[string]string, moves []engine.Move) error
	// Tags returns the PGN tags kept for the game, empty when it has none.
	Tags(ctx context.Context, id uuid.UUID) (map[string]string, error)
	Get(ctx context.Context, id uuid.UUID) (*models.GameSummary, error)
	GetByToken(ctx context.Context, token uuid.UUID) (*models.GameSummary, error)
	List(ctx context.Context, filter models.GameFilter) ([]models.GameSummary, error)
	Count(ctx context.Context, filter models.GameFilter) (int, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	UpdateSnapshot(ctx context.Context, id uuid.UUID, snapshot models.Snapshot) error
}

// MoveRepository is the append-only move log of each game.
type MoveRepository interface {
	// Append stores move at position index of the log and the snapshot that
	// results from it, atomically. index must equal the current log length.
	Append(ctx context.Context, gameID uuid.UUID, index int, move engine.Move, snapshot models.Snapshot) error
	// FetchAll returns the log in play order, empty for a game without moves.
	FetchAll(ctx context.Context, gameID uuid.UUID) ([]engine.Move, error)
}
