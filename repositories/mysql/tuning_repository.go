package mysql

import (
	"context"
	"fmt"

	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/repositories"
	"go.uber.org/zap"
)

const tuningColumns = "tuning_id, car_id, tuning_name, tuning_date, tuning_description, created_at, updated_at"

// TuningRepository implements the repositories.TuningRepository interface
type TuningRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTuningRepository creates a new tuning repository
func NewTuningRepository(db *DB, logger *zap.Logger) repositories.TuningRepository {
	return &TuningRepository{
		db:     db,
		logger: logger,
	}
}

func scanTuning(row rowScanner) (*models.Tuning, error) {
	tuning := &models.Tuning{}
	err := row.Scan(
		&tuning.TuningID,
		&tuning.CarID,
		&tuning.TuningName,
		&tuning.TuningDate,
		&tuning.TuningDescription,
		&tuning.CreatedAt,
		&tuning.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return tuning, nil
}

// Create inserts a tuning record and returns the stored row
func (r *TuningRepository) Create(ctx context.Context, tuning *models.Tuning) (*models.Tuning, error) {
	query := `
		INSERT INTO Tunings (car_id, tuning_name, tuning_date, tuning_description)
		VALUES (?, ?, ?, ?)
	`

	id, err := lastInsertID(ctx, GetExecutor(ctx, r.db), "tuning", query,
		tuning.CarID,
		tuning.TuningName,
		tuning.TuningDate,
		tuning.TuningDescription,
	)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("tuning created", zap.Int64("tuning_id", id), zap.Int64("car_id", tuning.CarID))
	return r.GetByID(ctx, id)
}

// GetByID retrieves a tuning record by ID
func (r *TuningRepository) GetByID(ctx context.Context, id int64) (*models.Tuning, error) {
	query := fmt.Sprintf("SELECT %s FROM Tunings WHERE tuning_id = ?", tuningColumns)

	tuning, err := scanTuning(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanError(err, "tuning", id)
	}
	return tuning, nil
}

// List retrieves all tuning records
func (r *TuningRepository) List(ctx context.Context) ([]*models.Tuning, error) {
	query := fmt.Sprintf("SELECT %s FROM Tunings ORDER BY tuning_id", tuningColumns)
	return queryList(ctx, GetExecutor(ctx, r.db), "tunings", query, scanTuning)
}

// Update overwrites a tuning record and returns the stored row
func (r *TuningRepository) Update(ctx context.Context, id int64, tuning *models.Tuning) (*models.Tuning, error) {
	query := `
		UPDATE Tunings
		SET car_id = ?, tuning_name = ?, tuning_date = ?, tuning_description = ?
		WHERE tuning_id = ?
	`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		tuning.CarID,
		tuning.TuningName,
		tuning.TuningDate,
		tuning.TuningDescription,
		id,
	); err != nil {
		return nil, execError(err, "update", "tuning")
	}

	r.logger.Debug("tuning updated", zap.Int64("tuning_id", id))
	return r.GetByID(ctx, id)
}

// Delete deletes a tuning record
func (r *TuningRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, GetExecutor(ctx, r.db), "tuning", models.Tuning{}.TableName(), "tuning_id", id); err != nil {
		return err
	}

	r.logger.Debug("tuning deleted", zap.Int64("tuning_id", id))
	return nil
}
