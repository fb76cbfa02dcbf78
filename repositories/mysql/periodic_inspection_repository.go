package mysql

import (
	"context"
	"fmt"

	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/repositories"
	"go.uber.org/zap"
)

const periodicInspectionColumns = "pi_id, car_id, pi_name, pi_date, pi_nextdate, created_at, updated_at"

// PeriodicInspectionRepository implements the repositories.PeriodicInspectionRepository interface
type PeriodicInspectionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewPeriodicInspectionRepository creates a new periodic inspection repository
func NewPeriodicInspectionRepository(db *DB, logger *zap.Logger) repositories.PeriodicInspectionRepository {
	return &PeriodicInspectionRepository{
		db:     db,
		logger: logger,
	}
}

func scanPeriodicInspection(row rowScanner) (*models.PeriodicInspection, error) {
	pi := &models.PeriodicInspection{}
	err := row.Scan(
		&pi.PiID,
		&pi.CarID,
		&pi.PiName,
		&pi.PiDate,
		&pi.PiNextDate,
		&pi.CreatedAt,
		&pi.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return pi, nil
}

// Create inserts an inspection record and returns the stored row
func (r *PeriodicInspectionRepository) Create(ctx context.Context, pi *models.PeriodicInspection) (*models.PeriodicInspection, error) {
	query := `
		INSERT INTO PeriodicInspection (car_id, pi_name, pi_date, pi_nextdate)
		VALUES (?, ?, ?, ?)
	`

	id, err := lastInsertID(ctx, GetExecutor(ctx, r.db), "periodic inspection", query,
		pi.CarID,
		pi.PiName,
		pi.PiDate,
		pi.PiNextDate,
	)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("periodic inspection created",
		zap.Int64("pi_id", id),
		zap.Int64("car_id", pi.CarID),
		zap.Time("pi_nextdate", pi.PiNextDate))
	return r.GetByID(ctx, id)
}

// GetByID retrieves an inspection record by ID
func (r *PeriodicInspectionRepository) GetByID(ctx context.Context, id int64) (*models.PeriodicInspection, error) {
	query := fmt.Sprintf("SELECT %s FROM PeriodicInspection WHERE pi_id = ?", periodicInspectionColumns)

	pi, err := scanPeriodicInspection(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanError(err, "periodic inspection", id)
	}
	return pi, nil
}

// List retrieves all inspection records
func (r *PeriodicInspectionRepository) List(ctx context.Context) ([]*models.PeriodicInspection, error) {
	query := fmt.Sprintf("SELECT %s FROM PeriodicInspection ORDER BY pi_id", periodicInspectionColumns)
	return queryList(ctx, GetExecutor(ctx, r.db), "periodic inspections", query, scanPeriodicInspection)
}

// Update overwrites an inspection record and returns the stored row
func (r *PeriodicInspectionRepository) Update(ctx context.Context, id int64, pi *models.PeriodicInspection) (*models.PeriodicInspection, error) {
	query := `
		UPDATE PeriodicInspection
		SET car_id = ?, pi_name = ?, pi_date = ?, pi_nextdate = ?
		WHERE pi_id = ?
	`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		pi.CarID,
		pi.PiName,
		pi.PiDate,
		pi.PiNextDate,
		id,
	); err != nil {
		return nil, execError(err, "update", "periodic inspection")
	}

	r.logger.Debug("periodic inspection updated", zap.Int64("pi_id", id))
	return r.GetByID(ctx, id)
}

// Delete deletes an inspection record
func (r *PeriodicInspectionRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, GetExecutor(ctx, r.db), "periodic inspection", models.PeriodicInspection{}.TableName(), "pi_id", id); err != nil {
		return err
	}

	r.logger.Debug("periodic inspection deleted", zap.Int64("pi_id", id))
	return nil
}
