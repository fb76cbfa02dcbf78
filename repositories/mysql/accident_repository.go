package mysql

import (
	"context"
	"fmt"

	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/repositories"
	"go.uber.org/zap"
)

const accidentColumns = "accident_id, car_id, accident_date, accident_description, created_at, updated_at"

// AccidentRepository implements the repositories.AccidentRepository interface
type AccidentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAccidentRepository creates a new accident repository
func NewAccidentRepository(db *DB, logger *zap.Logger) repositories.AccidentRepository {
	return &AccidentRepository{
		db:     db,
		logger: logger,
	}
}

func scanAccident(row rowScanner) (*models.Accident, error) {
	a := &models.Accident{}
	if err := row.Scan(&a.AccidentID, &a.CarID, &a.AccidentDate, &a.AccidentDescription, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AccidentRepository) Create(ctx context.Context, accident *models.Accident) (*models.Accident, error) {
	query := `
		INSERT INTO Accidents (car_id, accident_date, accident_description)
		VALUES (?, ?, ?)
	`

	id, err := lastInsertID(ctx, GetExecutor(ctx, r.db), "accident", query,
		accident.CarID,
		accident.AccidentDate,
		accident.AccidentDescription,
	)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("accident created", zap.Int64("accident_id", id), zap.Int64("car_id", accident.CarID))
	return r.GetByID(ctx, id)
}

func (r *AccidentRepository) GetByID(ctx context.Context, id int64) (*models.Accident, error) {
	query := fmt.Sprintf("SELECT %s FROM Accidents WHERE accident_id = ?", accidentColumns)

	a, err := scanAccident(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanError(err, "accident", id)
	}
	return a, nil
}

func (r *AccidentRepository) List(ctx context.Context) ([]*models.Accident, error) {
	query := fmt.Sprintf("SELECT %s FROM Accidents ORDER BY accident_id", accidentColumns)
	return queryList(ctx, GetExecutor(ctx, r.db), "accidents", query, scanAccident)
}

func (r *AccidentRepository) Update(ctx context.Context, id int64, accident *models.Accident) (*models.Accident, error) {
	query := `
		UPDATE Accidents
		SET car_id = ?, accident_date = ?, accident_description = ?
		WHERE accident_id = ?
	`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		accident.CarID,
		accident.AccidentDate,
		accident.AccidentDescription,
		id,
	); err != nil {
		return nil, execError(err, "update", "accident")
	}

	r.logger.Debug("accident updated", zap.Int64("accident_id", id))
	return r.GetByID(ctx, id)
}

func (r *AccidentRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, GetExecutor(ctx, r.db), "accident", models.Accident{}.TableName(), "accident_id", id); err != nil {
		return err
	}

	r.logger.Debug("accident deleted", zap.Int64("accident_id", id))
	return nil
}
