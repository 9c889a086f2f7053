package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueReconcile(gameID uuid.UUID) error {
	args := m.Called(gameID)
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueMatchmaking() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueReconcileAll() error {
	args := m.Called()
	return args.Error(0)
}
