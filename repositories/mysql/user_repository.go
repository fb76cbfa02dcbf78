package mysql

import (
	"context"
	"fmt"

	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/repositories"
	"go.uber.org/zap"
)

const userColumns = "user_id, user_email, user_name, user_password, created_at, updated_at"

// UserRepository implements the repositories.UserRepository interface
type UserRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB, logger *zap.Logger) repositories.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.UserID,
		&user.UserEmail,
		&user.UserName,
		&user.UserPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a user and returns the stored row
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO Users (user_email, user_name, user_password)
		VALUES (?, ?, ?)
	`

	executor := GetExecutor(ctx, r.db)
	id, err := lastInsertID(ctx, executor, "user", query,
		user.UserEmail,
		user.UserName,
		user.UserPassword,
	)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("user created", zap.Int64("user_id", id))
	return r.GetByID(ctx, id)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM Users WHERE user_id = ?", userColumns)

	user, err := scanUser(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanError(err, "user", id)
	}
	return user, nil
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM Users ORDER BY user_id", userColumns)
	return queryList(ctx, GetExecutor(ctx, r.db), "users", query, scanUser)
}

// Update overwrites a user's fields and returns the stored row
func (r *UserRepository) Update(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	query := `
		UPDATE Users
		SET user_email = ?, user_name = ?, user_password = ?
		WHERE user_id = ?
	`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query,
		user.UserEmail,
		user.UserName,
		user.UserPassword,
		id,
	); err != nil {
		return nil, execError(err, "update", "user")
	}

	r.logger.Debug("user updated", zap.Int64("user_id", id))
	return r.GetByID(ctx, id)
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, GetExecutor(ctx, r.db), "user", models.User{}.TableName(), "user_id", id); err != nil {
		return err
	}

	r.logger.Debug("user deleted", zap.Int64("user_id", id))
	return nil
}
