package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/logger"
	"github.com/vytor/ivanachess/internal/models"
	"github.com/vytor/ivanachess/internal/repository"
)

type moveRepository struct {
	db *sql.DB
}

// NewMoveRepository creates a new MoveRepository implementation
func NewMoveRepository(db *sql.DB) repository.MoveRepository {
	return &moveRepository{db: db}
}

func (r *moveRepository) Append(ctx context.Context, gameID uuid.UUID, index int, move engine.Move, snapshot models.Snapshot) error {
	log := logger.FromContext(ctx).WithPrefix("move_repo").WithGame(gameID)
	log.Debug("appending move: index=%d, move=%s", index, move)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		var count int
		err := tx.QueryRowContext(ctx, `SELECT move_count FROM games WHERE id = ?`, gameID.String()).Scan(&count)
		if err != nil {
			return err
		}
		if count != index {
			log.Warn("append rejected: log has %d moves, writer expected %d", count, index)
			return repository.ErrConflict
		}

		if err := insertMove(ctx, tx, gameID, index, move); err != nil {
			var sqliteErr sqlite3.Error
			if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
				return repository.ErrConflict
			}
			log.Error("failed to insert move: %v", err)
			return err
		}

		if _, err := snapshotUpdate(gameID, snapshot).RunWith(tx).ExecContext(ctx); err != nil {
			log.Error("failed to update snapshot: %v", err)
			return err
		}
		return nil
	})
}

func insertMove(ctx context.Context, runner squirrel.BaseRunner, gameID uuid.UUID, index int, move engine.Move) error {
	promotion := ""
	if p, ok := move.(engine.PromotionMove); ok {
		promotion = string(p.Promotion.Letter())
	}
	_, err := sqlBuilder.Insert("moves").
		Columns("game_id", "idx", "from_pos", "to_pos", "promotion", "played_at").
		Values(gameID.String(), index, move.Source().String(), move.Target().String(), promotion, now()).
		RunWith(runner).ExecContext(ctx)
	return err
}

func decodeMove(from, to, promotion string) (engine.Move, error) {
	m, err := engine.NewSimpleMove(from, to)
	if err != nil {
		return nil, err
	}
	if promotion == "" {
		return m, nil
	}
	t, err := engine.ParsePieceType(promotion)
	if err != nil {
		return nil, err
	}
	return engine.NewPromotion(m.From, m.To, t)
}

func (r *moveRepository) FetchAll(ctx context.Context, gameID uuid.UUID) ([]engine.Move, error) {
	log := logger.FromContext(ctx).WithPrefix("move_repo").WithGame(gameID)

	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, gameID.String()).Scan(&exists); err != nil {
		return nil, err
	}

	query, args, err := sqlBuilder.Select("idx", "from_pos", "to_pos", "promotion").
		From("moves").
		Where(squirrel.Eq{"game_id": gameID.String()}).
		OrderBy("idx").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to fetch moves: %v", err)
		return nil, err
	}
	defer rows.Close()

	moves := []engine.Move{}
	for rows.Next() {
		var (
			idx                 int
			from, to, promotion string
		)
		if err := rows.Scan(&idx, &from, &to, &promotion); err != nil {
			return nil, err
		}
		if idx != len(moves) {
			log.Error("move log has a gap at index %d", len(moves))
			return nil, fmt.Errorf("%w: game %s has no move at index %d", repository.ErrCorruptLog, gameID, len(moves))
		}
		m, err := decodeMove(from, to, promotion)
		if err != nil {
			log.Error("undecodable move at index %d: %v", idx, err)
			return nil, fmt.Errorf("%w: move %d of game %s: %v", repository.ErrCorruptLog, idx, gameID, err)
		}
		moves = append(moves, m)
	}
	log.Debug("fetched %d moves", len(moves))
	return moves, rows.Err()
}
