package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/models"
)

// MockGameRepository is a mock implementation of repository.GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game models.GameSummary) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) CreateWithMoves(ctx context.Context, game models.GameSummary, tags map[string]string, moves []engine.Move) error {
	args := m.Called(ctx, game, tags, moves)
	return args.Error(0)
}

func (m *MockGameRepository) Tags(ctx context.Context, id uuid.UUID) (map[string]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockGameRepository) Get(ctx context.Context, id uuid.UUID) (*models.GameSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameSummary), args.Error(1)
}

func (m *MockGameRepository) GetByToken(ctx context.Context, token uuid.UUID) (*models.GameSummary, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameSummary), args.Error(1)
}

func (m *MockGameRepository) List(ctx context.Context, filter models.GameFilter) ([]models.GameSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameSummary), args.Error(1)
}

func (m *MockGameRepository) Count(ctx context.Context, filter models.GameFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockGameRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockGameRepository) UpdateSnapshot(ctx context.Context, id uuid.UUID, snapshot models.Snapshot) error {
	args := m.Called(ctx, id, snapshot)
	return args.Error(0)
}

// MockMoveRepository is a mock implementation of repository.MoveRepository
type MockMoveRepository struct {
	mock.Mock
}

func (m *MockMoveRepository) Append(ctx context.Context, gameID uuid.UUID, index int, move engine.Move, snapshot models.Snapshot) error {
	args := m.Called(ctx, gameID, index, move, snapshot)
	return args.Error(0)
}

func (m *MockMoveRepository) FetchAll(ctx context.Context, gameID uuid.UUID) ([]engine.Move, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.Move), args.Error(1)
}
