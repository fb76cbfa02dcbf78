package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/autotrack/vehicle-records/repositories"
	mysqldriver "github.com/go-sql-driver/mysql"
)

// erDupEntry is the MySQL server error number for a unique key violation
const erDupEntry = 1062

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// lastInsertID executes an INSERT and returns the generated AUTO_INCREMENT id
func lastInsertID(ctx context.Context, executor Executor, entity, query string, args ...interface{}) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, execError(err, "create", entity)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s id: %w", entity, err)
	}
	return id, nil
}

// deleteByID deletes one row and reports ErrNotFound when nothing matched
func deleteByID(ctx context.Context, executor Executor, entity, table, idColumn string, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, idColumn)

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, err)
	}
	if affected == 0 {
		return notFound(entity, id)
	}
	return nil
}

// scanError maps sql.ErrNoRows to a wrapped repositories.ErrNotFound
func scanError(err error, entity string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(entity, id)
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}

// execError wraps a failed write, marking unique key violations with ErrDuplicate
func execError(err error, action, entity string) error {
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == erDupEntry {
		return fmt.Errorf("failed to %s %s: %w: %w", action, entity, repositories.ErrDuplicate, err)
	}
	return fmt.Errorf("failed to %s %s: %w", action, entity, err)
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, repositories.ErrNotFound)
}

// queryList runs query and scans each row with scan
func queryList[T any](ctx context.Context, executor Executor, entity, query string, scan func(rowScanner) (*T, error), args ...interface{}) ([]*T, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", entity, err)
	}
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", entity, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", entity, err)
	}

	return items, nil
}
