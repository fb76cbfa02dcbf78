package mysql

import (
	"context"
	"fmt"

	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/repositories"
	"go.uber.org/zap"
)

const maintenanceColumns = "maint_id, car_id, maint_type, maint_date, maint_description, created_at, updated_at"

// MaintenanceRepository implements the repositories.MaintenanceRepository interface
type MaintenanceRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *DB, logger *zap.Logger) repositories.MaintenanceRepository {
	return &MaintenanceRepository{
		db:     db,
		logger: logger,
	}
}

func scanMaintenance(row rowScanner) (*models.Maintenance, error) {
	m := &models.Maintenance{}
	err := row.Scan(
		&m.MaintID,
		&m.CarID,
		&m.MaintType,
		&m.MaintDate,
		&m.MaintDescription,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a maintenance record and returns the stored row
func (r *MaintenanceRepository) Create(ctx context.Context, maintenance *models.Maintenance) (*models.Maintenance, error) {
	query := `
		INSERT INTO Maintenances (car_id, maint_type, maint_date, maint_description)
		VALUES (?, ?, ?, ?)
	`

	id, err := lastInsertID(ctx, GetExecutor(ctx, r.db), "maintenance", query,
		maintenance.CarID,
		maintenance.MaintType,
		maintenance.MaintDate,
		maintenance.MaintDescription,
	)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("maintenance created", zap.Int64("maint_id", id), zap.Int64("car_id", maintenance.CarID))
	return r.GetByID(ctx, id)
}

// GetByID retrieves a maintenance record by ID
func (r *MaintenanceRepository) GetByID(ctx context.Context, id int64) (*models.Maintenance, error) {
	query := fmt.Sprintf("SELECT %s FROM Maintenances WHERE maint_id = ?", maintenanceColumns)

	m, err := scanMaintenance(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanError(err, "maintenance", id)
	}
	return m, nil
}

// List retrieves all maintenance records
func (r *MaintenanceRepository) List(ctx context.Context) ([]*models.Maintenance, error) {
	query := fmt.Sprintf("SELECT %s FROM Maintenances ORDER BY maint_id", maintenanceColumns)
	return queryList(ctx, GetExecutor(ctx, r.db), "maintenances", query, scanMaintenance)
}

// Update overwrites a maintenance record and returns the stored row
func (r *MaintenanceRepository) Update(ctx context.Context, id int64, maintenance *models.Maintenance) (*models.Maintenance, error) {
	query := `
		UPDATE Maintenances
		SET car_id = ?, maint_type = ?, maint_date = ?, maint_description = ?
		WHERE maint_id = ?
	`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		maintenance.CarID,
		maintenance.MaintType,
		maintenance.MaintDate,
		maintenance.MaintDescription,
		id,
	); err != nil {
		return nil, execError(err, "update", "maintenance")
	}

	r.logger.Debug("maintenance updated", zap.Int64("maint_id", id))
	return r.GetByID(ctx, id)
}

// Delete deletes a maintenance record
func (r *MaintenanceRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, GetExecutor(ctx, r.db), "maintenance", models.Maintenance{}.TableName(), "maint_id", id); err != nil {
		return err
	}

	r.logger.Debug("maintenance deleted", zap.Int64("maint_id", id))
	return nil
}
