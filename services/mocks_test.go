package services

import (
	"context"

	"github.com/autotrack/vehicle-records/models"
	"github.com/stretchr/testify/mock"
)

// MockCarRepository is a mock implementation of repositories.CarRepository
type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	args := m.Called(ctx, car)
	if c := args.Get(0); c != nil {
		return c.(*models.Car), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCarRepository) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Car), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCarRepository) List(ctx context.Context) ([]*models.Car, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]*models.Car), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCarRepository) Update(ctx context.Context, id int64, car *models.Car) (*models.Car, error) {
	args := m.Called(ctx, id, car)
	if c := args.Get(0); c != nil {
		return c.(*models.Car), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCarRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCarRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Car, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.([]*models.Car), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCarRepository) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

func (m *MockCarRepository) LinkUser(ctx context.Context, userID, carID int64) error {
	return m.Called(ctx, userID, carID).Error(0)
}

func (m *MockCarRepository) UnlinkAll(ctx context.Context, carID int64) error {
	return m.Called(ctx, carID).Error(0)
}

// MockUploader is a mock implementation of storage.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *MockUploader) PublicURL(key string) string {
	return "https://r2.autotrack.work/" + key
}
