package mysql

import (
	"context"
	"fmt"

	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/repositories"
	"go.uber.org/zap"
)

const carColumns = "c.car_id, c.car_name, c.carmodelnum, c.car_color, c.car_mileage, c.car_isflooding, c.car_issmoked, c.car_image_url, c.created_at, c.updated_at"

// CarRepository implements the repositories.CarRepository interface
type CarRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCarRepository creates a new car repository
func NewCarRepository(db *DB, logger *zap.Logger) repositories.CarRepository {
	return &CarRepository{
		db:     db,
		logger: logger,
	}
}

func scanCar(row rowScanner) (*models.Car, error) {
	car := &models.Car{}
	err := row.Scan(
		&car.CarID,
		&car.CarName,
		&car.CarModelNum,
		&car.CarColor,
		&car.CarMileage,
		&car.CarIsFlooding,
		&car.CarIsSmoked,
		&car.CarImageURL,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return car, nil
}

// Create inserts a car and returns the stored row
func (r *CarRepository) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	query := `
		INSERT INTO Cars (car_name, carmodelnum, car_color, car_mileage, car_isflooding, car_issmoked, car_image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	executor := GetExecutor(ctx, r.db)
	id, err := lastInsertID(ctx, executor, "car", query,
		car.CarName,
		car.CarModelNum,
		car.CarColor,
		car.CarMileage,
		car.CarIsFlooding,
		car.CarIsSmoked,
		car.CarImageURL,
	)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("car created", zap.Int64("car_id", id))
	return r.GetByID(ctx, id)
}

// GetByID retrieves a car by ID
func (r *CarRepository) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	query := fmt.Sprintf("SELECT %s FROM Cars c WHERE c.car_id = ?", carColumns)

	car, err := scanCar(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanError(err, "car", id)
	}
	return car, nil
}

// List retrieves all cars
func (r *CarRepository) List(ctx context.Context) ([]*models.Car, error) {
	query := fmt.Sprintf("SELECT %s FROM Cars c ORDER BY c.car_id", carColumns)
	return queryList(ctx, GetExecutor(ctx, r.db), "cars", query, scanCar)
}

// ListByUserID retrieves the cars linked to a user through user_car
func (r *CarRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Car, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM Cars c
		JOIN user_car uc ON c.car_id = uc.car_id
		WHERE uc.user_id = ?
		ORDER BY c.car_id
	`, carColumns)
	return queryList(ctx, GetExecutor(ctx, r.db), "user cars", query, scanCar, userID)
}

// Update overwrites a car's fields and returns the stored row
func (r *CarRepository) Update(ctx context.Context, id int64, car *models.Car) (*models.Car, error) {
	query := `
		UPDATE Cars
		SET car_name = ?, carmodelnum = ?, car_color = ?, car_mileage = ?,
			car_isflooding = ?, car_issmoked = ?, car_image_url = ?
		WHERE car_id = ?
	`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query,
		car.CarName,
		car.CarModelNum,
		car.CarColor,
		car.CarMileage,
		car.CarIsFlooding,
		car.CarIsSmoked,
		car.CarImageURL,
		id,
	); err != nil {
		return nil, execError(err, "update", "car")
	}

	r.logger.Debug("car updated", zap.Int64("car_id", id))
	return r.GetByID(ctx, id)
}

// UpdateImageURL sets car_image_url for a car
func (r *CarRepository) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	query := `UPDATE Cars SET car_image_url = ? WHERE car_id = ?`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, imageURL, id); err != nil {
		return fmt.Errorf("failed to update car image url: %w", err)
	}

	// Affected rows is zero when the URL did not change, so existence is checked separately
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	r.logger.Debug("car image url updated", zap.Int64("car_id", id))
	return nil
}

// Delete deletes a car row. Links in user_car are not touched; use UnlinkAll first.
func (r *CarRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, GetExecutor(ctx, r.db), "car", models.Car{}.TableName(), "car_id", id); err != nil {
		return err
	}

	r.logger.Debug("car deleted", zap.Int64("car_id", id))
	return nil
}

// LinkUser inserts a user_car row
func (r *CarRepository) LinkUser(ctx context.Context, userID, carID int64) error {
	query := `INSERT INTO user_car (user_id, car_id) VALUES (?, ?)`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, userID, carID); err != nil {
		return execError(err, "link", fmt.Sprintf("user %d to car %d", userID, carID))
	}
	return nil
}

// UnlinkAll deletes every user_car row for a car
func (r *CarRepository) UnlinkAll(ctx context.Context, carID int64) error {
	query := `DELETE FROM user_car WHERE car_id = ?`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, carID); err != nil {
		return fmt.Errorf("failed to unlink car %d: %w", carID, err)
	}
	return nil
}
