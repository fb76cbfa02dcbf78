package repositories

import (
	"context"
	"errors"

	"github.com/autotrack/vehicle-records/models"
)

// ErrNotFound is returned (wrapped) when a row with the requested id does not exist
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned (wrapped) when an insert violates a unique key
var ErrDuplicate = errors.New("duplicate record")

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction
	// Automatically commits if function succeeds, rolls back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// UserRepository handles user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// CarRepository handles car data operations and the user_car link table
type CarRepository interface {
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	List(ctx context.Context) ([]*models.Car, error)
	Update(ctx context.Context, id int64, car *models.Car) (*models.Car, error)
	Delete(ctx context.Context, id int64) error

	// ListByUserID retrieves the cars linked to a user
	ListByUserID(ctx context.Context, userID int64) ([]*models.Car, error)

	// UpdateImageURL sets car_image_url for a car
	UpdateImageURL(ctx context.Context, id int64, imageURL string) error

	// LinkUser inserts a user_car row
	LinkUser(ctx context.Context, userID, carID int64) error

	// UnlinkAll deletes every user_car row for a car
	UnlinkAll(ctx context.Context, carID int64) error
}

// TuningRepository handles tuning data operations
type TuningRepository interface {
	Create(ctx context.Context, tuning *models.Tuning) (*models.Tuning, error)
	GetByID(ctx context.Context, id int64) (*models.Tuning, error)
	List(ctx context.Context) ([]*models.Tuning, error)
	Update(ctx context.Context, id int64, tuning *models.Tuning) (*models.Tuning, error)
	Delete(ctx context.Context, id int64) error
}

// MaintenanceRepository handles maintenance data operations
type MaintenanceRepository interface {
	Create(ctx context.Context, maintenance *models.Maintenance) (*models.Maintenance, error)
	GetByID(ctx context.Context, id int64) (*models.Maintenance, error)
	List(ctx context.Context) ([]*models.Maintenance, error)
	Update(ctx context.Context, id int64, maintenance *models.Maintenance) (*models.Maintenance, error)
	Delete(ctx context.Context, id int64) error
}

// FuelEfficiencyRepository handles fuel efficiency data operations
type FuelEfficiencyRepository interface {
	Create(ctx context.Context, fe *models.FuelEfficiency) (*models.FuelEfficiency, error)
	GetByID(ctx context.Context, id int64) (*models.FuelEfficiency, error)
	List(ctx context.Context) ([]*models.FuelEfficiency, error)
	Update(ctx context.Context, id int64, fe *models.FuelEfficiency) (*models.FuelEfficiency, error)
	Delete(ctx context.Context, id int64) error
}

// AccidentRepository handles accident data operations
type AccidentRepository interface {
	Create(ctx context.Context, accident *models.Accident) (*models.Accident, error)
	GetByID(ctx context.Context, id int64) (*models.Accident, error)
	List(ctx context.Context) ([]*models.Accident, error)
	Update(ctx context.Context, id int64, accident *models.Accident) (*models.Accident, error)
	Delete(ctx context.Context, id int64) error
}

// PeriodicInspectionRepository handles periodic inspection data operations
type PeriodicInspectionRepository interface {
	Create(ctx context.Context, pi *models.PeriodicInspection) (*models.PeriodicInspection, error)
	GetByID(ctx context.Context, id int64) (*models.PeriodicInspection, error)
	List(ctx context.Context) ([]*models.PeriodicInspection, error)
	Update(ctx context.Context, id int64, pi *models.PeriodicInspection) (*models.PeriodicInspection, error)
	Delete(ctx context.Context, id int64) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users               UserRepository
	Cars                CarRepository
	Tunings             TuningRepository
	Maintenances        MaintenanceRepository
	FuelEfficiencies    FuelEfficiencyRepository
	Accidents           AccidentRepository
	PeriodicInspections PeriodicInspectionRepository
}
