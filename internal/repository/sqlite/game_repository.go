package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/logger"
	"github.com/vytor/ivanachess/internal/models"
	"github.com/vytor/ivanachess/internal/repository"
)

var gameColumns = []string{
	"id", "white_token", "black_token", "created_at",
	"turn_color", "state", "draw_reason", "move_count",
}

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository implementation
func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*models.GameSummary, error) {
	var (
		g                       models.GameSummary
		id, white, black        string
		turn, state, drawReason string
		createdAt               time.Time
	)
	if err := row.Scan(&id, &white, &black, &createdAt, &turn, &state, &drawReason, &g.MoveCount); err != nil {
		return nil, err
	}

	var err error
	if g.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("game id %q: %w", id, err)
	}
	if g.WhiteToken, err = uuid.Parse(white); err != nil {
		return nil, fmt.Errorf("white token of game %s: %w", id, err)
	}
	if g.BlackToken, err = uuid.Parse(black); err != nil {
		return nil, fmt.Errorf("black token of game %s: %w", id, err)
	}
	if g.TurnColor, err = engine.ParseColor(turn); err != nil {
		return nil, fmt.Errorf("turn color of game %s: %w", id, err)
	}
	if g.State, err = engine.ParseState(state); err != nil {
		return nil, fmt.Errorf("state of game %s: %w", id, err)
	}
	g.DrawReason = engine.DrawReason(drawReason)
	g.CreatedAt = createdAt.UTC()
	return &g, nil
}

func colorText(c engine.Color) string {
	b, _ := c.MarshalText()
	return string(b)
}

func insertGame(ctx context.Context, runner squirrel.BaseRunner, g models.GameSummary) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now()
	}
	_, err := sqlBuilder.Insert("games").Columns(gameColumns...).Values(
		g.ID.String(), g.WhiteToken.String(), g.BlackToken.String(), g.CreatedAt,
		colorText(g.TurnColor), string(g.State), string(g.DrawReason), g.MoveCount,
	).RunWith(runner).ExecContext(ctx)
	return err
}

func (r *gameRepository) Create(ctx context.Context, g models.GameSummary) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("creating game: id=%s", g.ID)

	if err := insertGame(ctx, r.db, g); err != nil {
		log.Error("failed to create game: %v", err)
		return err
	}
	return nil
}

func (r *gameRepository) CreateWithMoves(ctx context.Context, g models.GameSummary, tags map[string]string, moves []engine.Move) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo").WithGame(g.ID)
	log.Debug("creating game with %d moves and %d tags", len(moves), len(tags))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if err := insertGame(ctx, tx, g); err != nil {
			log.Error("failed to create game: %v", err)
			return err
		}
		if len(tags) > 0 {
			insert := sqlBuilder.Insert("game_tags").Columns("game_id", "name", "value")
			for name, value := range tags {
				insert = insert.Values(g.ID.String(), name, value)
			}
			if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
				log.Error("failed to store tags: %v", err)
				return err
			}
		}
		for i, m := range moves {
			if err := insertMove(ctx, tx, g.ID, i, m); err != nil {
				log.Error("failed to store move %d: %v", i, err)
				return err
			}
		}
		return nil
	})
}

func (r *gameRepository) Tags(ctx context.Context, id uuid.UUID) (map[string]string, error) {
	rows, err := sqlBuilder.Select("name", "value").From("game_tags").
		Where(squirrel.Eq{"game_id": id.String()}).
		RunWith(r.db).QueryContext(ctx)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("game_repo").Error("failed to fetch tags: %v", err)
		return nil, err
	}
	defer rows.Close()

	tags := map[string]string{}
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		tags[name] = value
	}
	return tags, rows.Err()
}

func (r *gameRepository) getBy(ctx context.Context, where squirrel.Sqlizer) (*models.GameSummary, error) {
	query, args, err := sqlBuilder.Select(gameColumns...).From("games").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanGame(r.db.QueryRowContext(ctx, query, args...))
}

func (r *gameRepository) Get(ctx context.Context, id uuid.UUID) (*models.GameSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("getting game: id=%s", id)

	g, err := r.getBy(ctx, squirrel.Eq{"id": id.String()})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("game not found: id=%s", id)
		} else {
			log.Error("failed to get game: %v", err)
		}
		return nil, err
	}
	return g, nil
}

func (r *gameRepository) GetByToken(ctx context.Context, token uuid.UUID) (*models.GameSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	t := token.String()
	g, err := r.getBy(ctx, squirrel.Or{squirrel.Eq{"white_token": t}, squirrel.Eq{"black_token": t}})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no game for token")
		} else {
			log.Error("failed to get game by token: %v", err)
		}
		return nil, err
	}
	return g, nil
}

func applyGameFilter(query squirrel.SelectBuilder, filter models.GameFilter) squirrel.SelectBuilder {
	if filter.State != "" {
		query = query.Where(squirrel.Eq{"state": string(filter.State)})
	}
	return query
}

func (r *gameRepository) List(ctx context.Context, filter models.GameFilter) ([]models.GameSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("listing games with filter: state=%s, limit=%d, offset=%d", filter.State, filter.Limit, filter.Offset)

	query := applyGameFilter(sqlBuilder.Select(gameColumns...).From("games"), filter)

	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy("created_at "+orderDir, "id "+orderDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, err
	}
	defer rows.Close()

	var games []models.GameSummary
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("failed to scan game row: %v", err)
			return nil, err
		}
		games = append(games, *g)
	}
	log.Debug("found %d games", len(games))
	return games, rows.Err()
}

func (r *gameRepository) Count(ctx context.Context, filter models.GameFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	sql, args, err := applyGameFilter(sqlBuilder.Select("COUNT(*)").From("games"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sql, args...).Scan(&count); err != nil {
		log.Error("failed to count games: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *gameRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM games ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("game id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func snapshotUpdate(id uuid.UUID, snapshot models.Snapshot) squirrel.UpdateBuilder {
	return sqlBuilder.Update("games").
		Set("turn_color", colorText(snapshot.TurnColor)).
		Set("state", string(snapshot.State)).
		Set("draw_reason", string(snapshot.DrawReason)).
		Set("move_count", snapshot.MoveCount).
		Where(squirrel.Eq{"id": id.String()})
}

func (r *gameRepository) UpdateSnapshot(ctx context.Context, id uuid.UUID, snapshot models.Snapshot) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("updating snapshot: id=%s, turn=%s, state=%s, moves=%d", id, snapshot.TurnColor, snapshot.State, snapshot.MoveCount)

	res, err := snapshotUpdate(id, snapshot).RunWith(r.db).ExecContext(ctx)
	if err != nil {
		log.Error("failed to update snapshot: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
