package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/errors"
	"github.com/vytor/ivanachess/internal/models"
	"github.com/vytor/ivanachess/internal/services"
	"github.com/vytor/ivanachess/internal/testutil/mocks"
)

func TestMatchmaking_PairsTwoPlayers(t *testing.T) {
	games := newSQLiteService(t)
	mm := services.NewMatchmakingService(games, nil)
	ctx := context.Background()

	first, err := mm.Join(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.TicketWaiting, first.Status)

	second, err := mm.Join(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, models.TicketMatched, second.Status)

	first, err = mm.Ticket(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, models.TicketMatched, first.Status)

	assert.Equal(t, *first.GameID, *second.GameID)
	assert.Equal(t, engine.White, *first.Color)
	assert.Equal(t, engine.Black, *second.Color)

	info, err := games.GetByToken(ctx, *first.Token)
	require.NoError(t, err)
	assert.Equal(t, *first.GameID, info.Summary.ID)
	assert.Equal(t, *second.Token, info.Summary.BlackToken)
}

func TestMatchmaking_JoinTwiceReturnsSameTicket(t *testing.T) {
	mm := services.NewMatchmakingService(newSQLiteService(t), nil)
	ctx := context.Background()

	a, err := mm.Join(ctx, "alice")
	require.NoError(t, err)
	b, err := mm.Join(ctx, " alice ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, models.TicketWaiting, b.Status)
}

func TestMatchmaking_Leave(t *testing.T) {
	mm := services.NewMatchmakingService(newSQLiteService(t), nil)
	ctx := context.Background()

	ticket, err := mm.Join(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, mm.Leave(ctx, "alice"))

	ticket, err = mm.Ticket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketCancelled, ticket.Status)

	err = mm.Leave(ctx, "alice")
	requireAppError(t, err, errors.ErrCodeNotFound)

	// bob must not be paired with the cancelled ticket
	bob, err := mm.Join(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.TicketWaiting, bob.Status)
}

func TestMatchmaking_Validation(t *testing.T) {
	mm := services.NewMatchmakingService(newSQLiteService(t), nil)

	_, err := mm.Join(context.Background(), "  ")
	requireAppError(t, err, errors.ErrCodeValidation)
	requireAppError(t, mm.Leave(context.Background(), ""), errors.ErrCodeValidation)
}

func TestMatchmaking_EnqueuesWhenPairAvailable(t *testing.T) {
	games := newSQLiteService(t)
	queue := new(mocks.MockJobQueue)
	queue.On("EnqueueMatchmaking").Return(nil).Once()
	mm := services.NewMatchmakingService(games, queue)
	ctx := context.Background()

	_, err := mm.Join(ctx, "alice")
	require.NoError(t, err)
	bob, err := mm.Join(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.TicketWaiting, bob.Status)
	queue.AssertExpectations(t)

	n, err := mm.MatchWaiting(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	bob, err = mm.Ticket(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketMatched, bob.Status)
}

func TestMatchmaking_FallsBackWhenQueueFull(t *testing.T) {
	queue := new(mocks.MockJobQueue)
	queue.On("EnqueueMatchmaking").Return(stderrors.New("queue full"))
	mm := services.NewMatchmakingService(newSQLiteService(t), queue)
	ctx := context.Background()

	_, err := mm.Join(ctx, "alice")
	require.NoError(t, err)
	bob, err := mm.Join(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.TicketMatched, bob.Status)
}

func TestMatchmaking_UnknownTicket(t *testing.T) {
	mm := services.NewMatchmakingService(newSQLiteService(t), nil)
	_, err := mm.Ticket(context.Background(), uuid.New())
	requireAppError(t, err, errors.ErrCodeNotFound)
}
