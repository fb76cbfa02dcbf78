package handlers

import (
	"context"

	"github.com/autotrack/vehicle-records/models"
	"github.com/stretchr/testify/mock"
)

// MockRecordStore is a mock implementation of RecordStore
type MockRecordStore[T any] struct {
	mock.Mock
}

func (m *MockRecordStore[T]) Create(ctx context.Context, item *T) (*T, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRecordStore[T]) Get(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRecordStore[T]) List(ctx context.Context) ([]*T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*T), args.Error(1)
}

func (m *MockRecordStore[T]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	args := m.Called(ctx, id, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRecordStore[T]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCarStore is a mock implementation of CarStore
type MockCarStore struct {
	MockRecordStore[models.Car]
}

func (m *MockCarStore) CreateForUser(ctx context.Context, car *models.Car, userID int64) (*models.Car, error) {
	args := m.Called(ctx, car, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *MockCarStore) ListByUser(ctx context.Context, userID int64) ([]*models.Car, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Car), args.Error(1)
}

func (m *MockCarStore) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

// MockImageUploader is a mock implementation of ImageUploader
type MockImageUploader struct {
	mock.Mock
}

func (m *MockImageUploader) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}
