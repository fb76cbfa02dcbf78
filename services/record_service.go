package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/autotrack/vehicle-records/repositories"
	"github.com/autotrack/vehicle-records/utils"
	"go.uber.org/zap"
)

// CRUDRepository is the shape shared by every record repository
type CRUDRepository[T any] interface {
	Create(ctx context.Context, item *T) (*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Update(ctx context.Context, id int64, item *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// RecordService validates records and maps repository failures to domain errors
type RecordService[T any] struct {
	repo     CRUDRepository[T]
	entity   string
	notFound *DomainError
	logger   *zap.Logger
}

// NewRecordService creates a record service. notFound is the error type
// reported when a row is missing; entity names the record in messages.
func NewRecordService[T any](entity string, repo CRUDRepository[T], notFound *DomainError, logger *zap.Logger) *RecordService[T] {
	return &RecordService[T]{
		repo:     repo,
		entity:   entity,
		notFound: notFound,
		logger:   logger,
	}
}

// Create validates and stores a record
func (s *RecordService[T]) Create(ctx context.Context, item *T) (*T, error) {
	if err := validateRecord(item); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, s.mapError("create", 0, err)
	}
	return created, nil
}

// Get returns one record
func (s *RecordService[T]) Get(ctx context.Context, id int64) (*T, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("get", id, err)
	}
	return item, nil
}

// List returns every record
func (s *RecordService[T]) List(ctx context.Context) ([]*T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.mapError("list", 0, err)
	}
	return items, nil
}

// Update validates and overwrites a record
func (s *RecordService[T]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	if err := validateRecord(item); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, item)
	if err != nil {
		return nil, s.mapError("update", id, err)
	}
	return updated, nil
}

// Delete removes a record
func (s *RecordService[T]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError("delete", id, err)
	}
	return nil
}

func (s *RecordService[T]) mapError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return NewDomainError(s.notFound.Type, s.notFound.Message, err).WithDetail("id", id)
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrDuplicateRecord.Wrap(err).WithDetail("entity", s.entity)
	default:
		s.logger.Error("repository call failed",
			zap.String("entity", s.entity),
			zap.String("op", op),
			zap.Error(err))
		return ErrDatabaseError.Wrap(fmt.Errorf("failed to %s %s: %w", op, s.entity, err))
	}
}

// validateRecord runs struct tag validation and reports failures as a
// validation DomainError carrying the offending fields
func validateRecord(item interface{}) error {
	err := utils.ValidateStruct(item)
	if err == nil {
		return nil
	}

	domainErr := ErrInvalidRecord.Wrap(err)
	for field, msg := range utils.GetValidationFields(err) {
		domainErr.WithDetail(field, msg)
	}
	return domainErr
}
