package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/errors"
	"github.com/vytor/ivanachess/internal/logger"
	"github.com/vytor/ivanachess/internal/models"
	"github.com/vytor/ivanachess/internal/notation"
	"github.com/vytor/ivanachess/internal/repository"
)

// GameService handles game-related business logic
type GameService interface {
	Create(ctx context.Context) (*models.GameInfo, error)
	Import(ctx context.Context, moves []engine.Move, tags map[string]string) (*models.GameInfo, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.GameInfo, error)
	GetByToken(ctx context.Context, token uuid.UUID) (*models.GameInfo, error)
	List(ctx context.Context, page, size int, state string) (models.Page[models.GameSummary], error)
	Play(ctx context.Context, token uuid.UUID, move engine.Move) (*models.GameInfo, error)
	Board(ctx context.Context, id uuid.UUID) ([]byte, error)
	PGN(ctx context.Context, id uuid.UUID) (string, error)
	Reconcile(ctx context.Context, id uuid.UUID) (bool, error)
}

type gameService struct {
	gameRepo   repository.GameRepository
	moveRepo   repository.MoveRepository
	serializer engine.BoardSerializer
	locks      *gameLocks
	newID      func() uuid.UUID
	now        func() time.Time
}

// NewGameService creates a new GameService
func NewGameService(gameRepo repository.GameRepository, moveRepo repository.MoveRepository, serializer engine.BoardSerializer) GameService {
	return &gameService{
		gameRepo:   gameRepo,
		moveRepo:   moveRepo,
		serializer: serializer,
		locks:      newGameLocks(),
		newID:      uuid.New,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *gameService) newSummary() models.GameSummary {
	return models.GameSummary{
		ID:         s.newID(),
		WhiteToken: s.newID(),
		BlackToken: s.newID(),
		CreatedAt:  s.now().Truncate(time.Millisecond),
		Snapshot:   models.InitialSnapshot,
	}
}

func (s *gameService) Create(ctx context.Context) (*models.GameInfo, error) {
	log := logger.FromContext(ctx)

	summary := s.newSummary()
	if err := s.gameRepo.Create(ctx, summary); err != nil {
		log.Error("failed to create game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.WithGame(summary.ID).Info("game created")
	return &models.GameInfo{Summary: summary, Game: engine.NewGame()}, nil
}

// Import creates a game already holding moves, keeping tags for its PGN
// export. The whole line is checked before anything is stored.
func (s *gameService) Import(ctx context.Context, moves []engine.Move, tags map[string]string) (*models.GameInfo, error) {
	log := logger.FromContext(ctx)

	game := engine.NewGame()
	for i, m := range moves {
		next, err := game.Play(m)
		if err != nil {
			var moveErr *engine.MoveError
			if stderrors.As(err, &moveErr) {
				log.Debug("rejected import: move %d (%s): %s", i+1, m, moveErr.Reason)
				return nil, errors.NewInvalidMoveError(string(moveErr.Reason), fmt.Sprintf("move %d: %s", i+1, moveErr.Reason.Message()), err)
			}
			return nil, errors.NewInternalError(err)
		}
		game = next
	}

	summary := s.newSummary()
	summary.Snapshot = models.SnapshotOf(game)
	if err := s.gameRepo.CreateWithMoves(ctx, summary, tags, moves); err != nil {
		log.WithGame(summary.ID).Error("failed to store imported game: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.WithGame(summary.ID).Info("imported game with %d moves", len(moves))
	return &models.GameInfo{Summary: summary, Game: game}, nil
}

func (s *gameService) GetByID(ctx context.Context, id uuid.UUID) (*models.GameInfo, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting game: id=%s", id)

	summary, err := s.gameRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewGameNotFoundError(id)
		}
		log.Error("failed to get game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.load(ctx, summary)
}

func (s *gameService) GetByToken(ctx context.Context, token uuid.UUID) (*models.GameInfo, error) {
	summary, err := s.summaryByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, summary)
}

func (s *gameService) summaryByToken(ctx context.Context, token uuid.UUID) (*models.GameSummary, error) {
	summary, err := s.gameRepo.GetByToken(ctx, token)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewGameNotFoundError(token)
		}
		logger.FromContext(ctx).Error("failed to get game by token: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return summary, nil
}

// replay fetches the move log of id and rebuilds the game from it.
func (s *gameService) replay(ctx context.Context, id uuid.UUID) ([]engine.Move, *engine.Game, error) {
	log := logger.FromContext(ctx).WithGame(id)

	moves, err := s.moveRepo.FetchAll(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil, errors.NewGameNotFoundError(id)
		}
		if stderrors.Is(err, repository.ErrCorruptLog) {
			log.Error("stored move log is corrupt: %v", err)
			return nil, nil, errors.NewReplayCorruptedError(id, err)
		}
		log.Error("failed to fetch moves: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}

	game, err := engine.Replay(moves)
	if err != nil {
		var replayErr *engine.ReplayError
		if stderrors.As(err, &replayErr) {
			log.Error("move log does not replay: index=%d, move=%s: %v", replayErr.Index, replayErr.Move, replayErr.Cause)
			return nil, nil, errors.NewReplayCorruptedError(id, err)
		}
		return nil, nil, errors.NewInternalError(err)
	}
	return moves, game, nil
}

func (s *gameService) load(ctx context.Context, summary *models.GameSummary) (*models.GameInfo, error) {
	_, game, err := s.replay(ctx, summary.ID)
	if err != nil {
		return nil, err
	}
	if snap := models.SnapshotOf(game); snap != summary.Snapshot {
		logger.FromContext(ctx).WithGame(summary.ID).Warn("stored snapshot is stale: stored=%+v, replayed=%+v", summary.Snapshot, snap)
		summary.Snapshot = snap
	}
	return &models.GameInfo{Summary: *summary, Game: game}, nil
}

func (s *gameService) List(ctx context.Context, page, size int, state string) (models.Page[models.GameSummary], error) {
	log := logger.FromContext(ctx)
	log.Debug("listing games: page=%d, size=%d, state=%s", page, size, state)

	if page < 1 {
		return models.Page[models.GameSummary]{}, errors.NewValidationError("page", "must be strictly positive")
	}
	if size < 1 {
		return models.Page[models.GameSummary]{}, errors.NewValidationError("size", "must be strictly positive")
	}
	filter := models.GameFilter{Limit: size, Offset: (page - 1) * size}
	if state != "" {
		st, err := engine.ParseState(state)
		if err != nil {
			return models.Page[models.GameSummary]{}, errors.NewValidationError("state", err.Error())
		}
		filter.State = st
	}

	games, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return models.Page[models.GameSummary]{}, errors.NewInternalError(err)
	}
	total, err := s.gameRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count games: %v", err)
		return models.Page[models.GameSummary]{}, errors.NewInternalError(err)
	}
	return models.NewPage(games, page, size, total), nil
}

func (s *gameService) Play(ctx context.Context, token uuid.UUID, move engine.Move) (*models.GameInfo, error) {
	summary, err := s.summaryByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	color, _ := summary.ColorOf(token)
	log := logger.FromContext(ctx).WithGame(summary.ID).WithField("color", color)

	unlock := s.locks.lock(summary.ID)
	defer unlock()

	moves, game, err := s.replay(ctx, summary.ID)
	if err != nil {
		return nil, err
	}

	if color != game.Turn() {
		log.Debug("rejected move %s: not %s's turn", move, color)
		return nil, errors.NewInvalidPlayerError("it is not " + color.String() + "'s turn")
	}

	next, err := game.Play(move)
	if err != nil {
		var moveErr *engine.MoveError
		if stderrors.As(err, &moveErr) {
			log.Debug("rejected move %s: %s", move, moveErr.Reason)
			return nil, errors.NewInvalidMoveError(string(moveErr.Reason), moveErr.Reason.Message(), err)
		}
		return nil, errors.NewInternalError(err)
	}

	snap := models.SnapshotOf(next)
	if err := s.moveRepo.Append(ctx, summary.ID, len(moves), move, snap); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			log.Warn("concurrent write on move %d", len(moves))
			return nil, errors.NewConflictError("game was updated concurrently, retry", err)
		}
		log.Error("failed to append move: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("move played: %s, state=%s", move, snap.State)
	summary.Snapshot = snap
	return &models.GameInfo{Summary: *summary, Game: next}, nil
}

func (s *gameService) Board(ctx context.Context, id uuid.UUID) ([]byte, error) {
	info, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.serializer.Serialize(info.Game.Board()), nil
}

func (s *gameService) PGN(ctx context.Context, id uuid.UUID) (string, error) {
	info, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	stored, err := s.gameRepo.Tags(ctx, id)
	if err != nil {
		logger.FromContext(ctx).WithGame(id).Error("failed to fetch tags: %v", err)
		return "", errors.NewInternalError(err)
	}
	tags := map[string]string{
		"Event": "Ivana Chess game",
		"Site":  "ivanachess",
		"Date":  info.Summary.CreatedAt.Format("2006.01.02"),
		"Round": "-",
		"White": "white",
		"Black": "black",
	}
	maps.Copy(tags, stored)
	tags["Result"] = notation.Result(info.Game.State(), info.Game.Turn())

	pgn, err := notation.PGN(info.Game.Moves(), tags)
	if err != nil {
		logger.FromContext(ctx).WithGame(id).Error("failed to export pgn: %v", err)
		return "", errors.NewInternalError(err)
	}
	return pgn, nil
}

// Reconcile rewrites the stored snapshot of id when it no longer matches a
// replay of the move log. It reports whether anything was rewritten.
func (s *gameService) Reconcile(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContext(ctx).WithGame(id)

	unlock := s.locks.lock(id)
	defer unlock()

	summary, err := s.gameRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return false, errors.NewGameNotFoundError(id)
		}
		return false, errors.NewInternalError(err)
	}
	_, game, err := s.replay(ctx, id)
	if err != nil {
		return false, err
	}

	snap := models.SnapshotOf(game)
	if snap == summary.Snapshot {
		log.Debug("snapshot consistent")
		return false, nil
	}
	if err := s.gameRepo.UpdateSnapshot(ctx, id, snap); err != nil {
		log.Error("failed to update snapshot: %v", err)
		return false, errors.NewInternalError(err)
	}
	log.Warn("snapshot reconciled: stored=%+v, replayed=%+v", summary.Snapshot, snap)
	return true, nil
}
