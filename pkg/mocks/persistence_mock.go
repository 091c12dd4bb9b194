// Package mocks provides testify mocks of the persistence layer.
package mocks

import (
	"context"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockPersistence is a mock implementation of persistence.Persistence interface.
type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) Models(ctx context.Context) ([]*models.RealTimeControlModel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.RealTimeControlModel), args.Error(1)
}

func (m *MockPersistence) SaveModel(ctx context.Context, model *models.RealTimeControlModel) error {
	args := m.Called(ctx, model)

	return args.Error(0)
}

func (m *MockPersistence) ModelByID(ctx context.Context, id string) (*models.RealTimeControlModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.RealTimeControlModel), args.Error(1)
}

func (m *MockPersistence) DeleteModel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
