package mysql

import (
	"context"
	"fmt"

	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/repositories"
	"go.uber.org/zap"
)

const fuelEfficiencyColumns = "fe_id, car_id, fe_date, fe_amount, fe_unitprice, fe_mileage, created_at, updated_at"

// FuelEfficiencyRepository implements the repositories.FuelEfficiencyRepository interface
type FuelEfficiencyRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewFuelEfficiencyRepository creates a new fuel efficiency repository
func NewFuelEfficiencyRepository(db *DB, logger *zap.Logger) repositories.FuelEfficiencyRepository {
	return &FuelEfficiencyRepository{
		db:     db,
		logger: logger,
	}
}

func scanFuelEfficiency(row rowScanner) (*models.FuelEfficiency, error) {
	fe := &models.FuelEfficiency{}
	err := row.Scan(
		&fe.FeID,
		&fe.CarID,
		&fe.FeDate,
		&fe.FeAmount,
		&fe.FeUnitPrice,
		&fe.FeMileage,
		&fe.CreatedAt,
		&fe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fe, nil
}

// Create inserts a refuelling record and returns the stored row
func (r *FuelEfficiencyRepository) Create(ctx context.Context, fe *models.FuelEfficiency) (*models.FuelEfficiency, error) {
	query := `
		INSERT INTO FuelEfficiencies (car_id, fe_date, fe_amount, fe_unitprice, fe_mileage)
		VALUES (?, ?, ?, ?, ?)
	`

	id, err := lastInsertID(ctx, GetExecutor(ctx, r.db), "fuel efficiency", query,
		fe.CarID,
		fe.FeDate,
		fe.FeAmount,
		fe.FeUnitPrice,
		fe.FeMileage,
	)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("fuel efficiency created",
		zap.Int64("fe_id", id),
		zap.Int64("car_id", fe.CarID),
		zap.Float64("total_cost", fe.TotalCost()))
	return r.GetByID(ctx, id)
}

// GetByID retrieves a refuelling record by ID
func (r *FuelEfficiencyRepository) GetByID(ctx context.Context, id int64) (*models.FuelEfficiency, error) {
	query := fmt.Sprintf("SELECT %s FROM FuelEfficiencies WHERE fe_id = ?", fuelEfficiencyColumns)

	fe, err := scanFuelEfficiency(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanError(err, "fuel efficiency", id)
	}
	return fe, nil
}

// List retrieves all refuelling records
func (r *FuelEfficiencyRepository) List(ctx context.Context) ([]*models.FuelEfficiency, error) {
	query := fmt.Sprintf("SELECT %s FROM FuelEfficiencies ORDER BY fe_id", fuelEfficiencyColumns)
	return queryList(ctx, GetExecutor(ctx, r.db), "fuel efficiencies", query, scanFuelEfficiency)
}

// Update overwrites a refuelling record and returns the stored row
func (r *FuelEfficiencyRepository) Update(ctx context.Context, id int64, fe *models.FuelEfficiency) (*models.FuelEfficiency, error) {
	query := `
		UPDATE FuelEfficiencies
		SET car_id = ?, fe_date = ?, fe_amount = ?, fe_unitprice = ?, fe_mileage = ?
		WHERE fe_id = ?
	`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		fe.CarID,
		fe.FeDate,
		fe.FeAmount,
		fe.FeUnitPrice,
		fe.FeMileage,
		id,
	); err != nil {
		return nil, execError(err, "update", "fuel efficiency")
	}

	r.logger.Debug("fuel efficiency updated", zap.Int64("fe_id", id))
	return r.GetByID(ctx, id)
}

// Delete deletes a refuelling record
func (r *FuelEfficiencyRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, GetExecutor(ctx, r.db), "fuel efficiency", models.FuelEfficiency{}.TableName(), "fe_id", id); err != nil {
		return err
	}

	r.logger.Debug("fuel efficiency deleted", zap.Int64("fe_id", id))
	return nil
}
