package services

import (
	"context"
	"strings"

	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/repositories"
	"go.uber.org/zap"
)

// CarService adds the ownership link and the image URL to plain car CRUD
type CarService struct {
	*RecordService[models.Car]
	cars   repositories.CarRepository
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewCarService creates a new car service
func NewCarService(cars repositories.CarRepository, txMgr repositories.TransactionManager, logger *zap.Logger) *CarService {
	return &CarService{
		RecordService: NewRecordService[models.Car]("car", cars, ErrCarNotFound, logger),
		cars:          cars,
		txMgr:         txMgr,
		logger:        logger,
	}
}

// CreateForUser stores the car and links it to userID in one transaction
func (s *CarService) CreateForUser(ctx context.Context, car *models.Car, userID int64) (*models.Car, error) {
	if err := validateRecord(car); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, NewDomainError(ErrorTypeValidation, "user_id must be a positive integer", nil).
			WithDetail("user_id", "user_id must be greater than 0")
	}

	created, err := WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) (*models.Car, error) {
		created, err := s.cars.Create(ctx, car)
		if err != nil {
			return nil, err
		}
		if err := s.cars.LinkUser(ctx, userID, created.CarID); err != nil {
			return nil, err
		}
		return created, nil
	})
	if err != nil {
		return nil, s.mapError("create", 0, err)
	}

	s.logger.Info("car registered",
		zap.Int64("car_id", created.CarID),
		zap.Int64("user_id", userID))
	return created, nil
}

// ListByUser returns the cars linked to userID
func (s *CarService) ListByUser(ctx context.Context, userID int64) ([]*models.Car, error) {
	cars, err := s.cars.ListByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapError("list", userID, err)
	}
	return cars, nil
}

// UpdateImageURL points the car at a stored image
func (s *CarService) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return NewDomainError(ErrorTypeValidation, "image url is required", nil)
	}

	if err := s.cars.UpdateImageURL(ctx, id, imageURL); err != nil {
		return s.mapError("update", id, err)
	}
	return nil
}

// Delete removes the car's user links and then the car in one transaction
func (s *CarService) Delete(ctx context.Context, id int64) error {
	err := WithTransaction(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) error {
		if err := s.cars.UnlinkAll(ctx, id); err != nil {
			return err
		}
		return s.cars.Delete(ctx, id)
	})
	if err != nil {
		return s.mapError("delete", id, err)
	}

	s.logger.Info("car deleted", zap.Int64("car_id", id))
	return nil
}
