package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/errors"
	"github.com/vytor/ivanachess/internal/jobs"
	"github.com/vytor/ivanachess/internal/logger"
	"github.com/vytor/ivanachess/internal/models"
)

// MatchmakingService pairs players who asked for a game. The queue lives in
// memory: tickets do not survive a restart.
type MatchmakingService interface {
	Join(ctx context.Context, player string) (*models.MatchTicket, error)
	Leave(ctx context.Context, player string) error
	Ticket(ctx context.Context, id uuid.UUID) (*models.MatchTicket, error)
	MatchWaiting(ctx context.Context) (int, error)
}

type matchmakingService struct {
	games    GameService
	jobQueue jobs.JobQueue

	mu       sync.Mutex
	waiting  []uuid.UUID
	tickets  map[uuid.UUID]*models.MatchTicket
	byPlayer map[string]uuid.UUID
	now      func() time.Time
}

// NewMatchmakingService creates a new MatchmakingService. With a nil
// jobQueue pairing runs inline on Join.
func NewMatchmakingService(games GameService, jobQueue jobs.JobQueue) MatchmakingService {
	return &matchmakingService{
		games:    games,
		jobQueue: jobQueue,
		tickets:  make(map[uuid.UUID]*models.MatchTicket),
		byPlayer: make(map[string]uuid.UUID),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func normalizePlayer(player string) string {
	return strings.TrimSpace(player)
}

// Join puts player in the queue. A player already waiting gets the ticket
// they hold.
func (s *matchmakingService) Join(ctx context.Context, player string) (*models.MatchTicket, error) {
	log := logger.FromContext(ctx)

	player = normalizePlayer(player)
	if player == "" {
		return nil, errors.NewValidationError("player", "cannot be empty")
	}

	s.mu.Lock()
	if id, ok := s.byPlayer[player]; ok {
		ticket := *s.tickets[id]
		s.mu.Unlock()
		log.Debug("player %s already waiting: ticket=%s", player, id)
		return &ticket, nil
	}
	ticket := &models.MatchTicket{
		ID:        uuid.New(),
		Player:    player,
		Status:    models.TicketWaiting,
		CreatedAt: s.now(),
	}
	s.tickets[ticket.ID] = ticket
	s.byPlayer[player] = ticket.ID
	s.waiting = append(s.waiting, ticket.ID)
	queued := len(s.waiting)
	out := *ticket
	s.mu.Unlock()

	log.Info("player %s joined matchmaking: ticket=%s, waiting=%d", player, ticket.ID, queued)
	if queued < 2 {
		return &out, nil
	}

	if s.jobQueue != nil {
		err := s.jobQueue.EnqueueMatchmaking()
		if err == nil {
			return &out, nil
		}
		log.Warn("failed to enqueue matchmaking, pairing inline: %v", err)
	}
	if _, err := s.MatchWaiting(ctx); err != nil {
		return nil, err
	}
	return s.Ticket(ctx, out.ID)
}

func (s *matchmakingService) Leave(ctx context.Context, player string) error {
	player = normalizePlayer(player)
	if player == "" {
		return errors.NewValidationError("player", "cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byPlayer[player]
	if !ok {
		return errors.NewNotFoundError("waiting ticket for player", player)
	}
	i := slices.Index(s.waiting, id)
	if i < 0 {
		// Popped by MatchWaiting, the game is being created.
		return errors.NewConflictError("ticket is already being matched", nil)
	}
	s.waiting = append(s.waiting[:i], s.waiting[i+1:]...)
	delete(s.byPlayer, player)
	s.tickets[id].Status = models.TicketCancelled
	logger.FromContext(ctx).Info("player %s left matchmaking: ticket=%s", player, id)
	return nil
}

func (s *matchmakingService) Ticket(_ context.Context, id uuid.UUID) (*models.MatchTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, errors.NewNotFoundError("ticket", id)
	}
	out := *ticket
	return &out, nil
}

// MatchWaiting creates a game for each pair of waiting tickets, oldest
// first. The older ticket plays white. It returns the number of games
// created.
func (s *matchmakingService) MatchWaiting(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	created := 0
	for {
		s.mu.Lock()
		if len(s.waiting) < 2 {
			s.mu.Unlock()
			return created, nil
		}
		white, black := s.waiting[0], s.waiting[1]
		s.waiting = s.waiting[2:]
		s.mu.Unlock()

		info, err := s.games.Create(ctx)
		if err != nil {
			s.mu.Lock()
			s.waiting = append([]uuid.UUID{white, black}, s.waiting...)
			s.mu.Unlock()
			log.Error("failed to create matched game: %v", err)
			return created, err
		}

		s.mu.Lock()
		s.resolve(white, info.Summary, engine.White)
		s.resolve(black, info.Summary, engine.Black)
		s.mu.Unlock()

		log.WithGame(info.Summary.ID).Info("matched tickets: white=%s, black=%s", white, black)
		created++
	}
}

func (s *matchmakingService) resolve(id uuid.UUID, summary models.GameSummary, color engine.Color) {
	ticket := s.tickets[id]
	gameID := summary.ID
	token := summary.TokenOf(color)
	ticket.Status = models.TicketMatched
	ticket.GameID = &gameID
	ticket.Color = &color
	ticket.Token = &token
	delete(s.byPlayer, ticket.Player)
}
