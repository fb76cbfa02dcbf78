package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/autotrack/vehicle-records/config"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"go.uber.org/zap"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return NewDBFromConn(db, logger), nil
}

// NewDBFromConn wraps an already opened pool
func NewDBFromConn(db *sql.DB, logger *zap.Logger) *DB {
	return &DB{
		DB:     db,
		logger: logger,
	}
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// schema holds one statement per element; the driver does not accept
// multiple statements in one Exec unless multiStatements is enabled.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS Users (
		user_id INT AUTO_INCREMENT PRIMARY KEY,
		user_email VARCHAR(255) NOT NULL,
		user_name VARCHAR(255) NOT NULL,
		user_password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Cars (
		car_id INT AUTO_INCREMENT PRIMARY KEY,
		car_name VARCHAR(255) NOT NULL,
		carmodelnum VARCHAR(255) NOT NULL DEFAULT '',
		car_color VARCHAR(255) NOT NULL DEFAULT '',
		car_mileage INT NOT NULL DEFAULT 0,
		car_isflooding TINYINT(1) NOT NULL DEFAULT 0,
		car_issmoked TINYINT(1) NOT NULL DEFAULT 0,
		car_image_url VARCHAR(1024),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_car (
		user_id INT NOT NULL,
		car_id INT NOT NULL,
		PRIMARY KEY (user_id, car_id),
		INDEX idx_user_car_car_id (car_id)
	)`,
	`CREATE TABLE IF NOT EXISTS Tunings (
		tuning_id INT AUTO_INCREMENT PRIMARY KEY,
		car_id INT NOT NULL,
		tuning_name VARCHAR(255) NOT NULL,
		tuning_date DATE NOT NULL,
		tuning_description TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_tunings_car_id (car_id)
	)`,
	`CREATE TABLE IF NOT EXISTS Maintenances (
		maint_id INT AUTO_INCREMENT PRIMARY KEY,
		car_id INT NOT NULL,
		maint_type VARCHAR(255) NOT NULL,
		maint_date DATE NOT NULL,
		maint_description TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_maintenances_car_id (car_id)
	)`,
	`CREATE TABLE IF NOT EXISTS FuelEfficiencies (
		fe_id INT AUTO_INCREMENT PRIMARY KEY,
		car_id INT NOT NULL,
		fe_date DATE NOT NULL,
		fe_amount FLOAT NOT NULL,
		fe_unitprice FLOAT NOT NULL,
		fe_mileage INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_fuel_efficiencies_car_id (car_id)
	)`,
	`CREATE TABLE IF NOT EXISTS Accidents (
		accident_id INT AUTO_INCREMENT PRIMARY KEY,
		car_id INT NOT NULL,
		accident_date DATE NOT NULL,
		accident_description TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_accidents_car_id (car_id)
	)`,
	`CREATE TABLE IF NOT EXISTS PeriodicInspection (
		pi_id INT AUTO_INCREMENT PRIMARY KEY,
		car_id INT NOT NULL,
		pi_name VARCHAR(255) NOT NULL,
		pi_date DATETIME NOT NULL,
		pi_nextdate DATETIME NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_periodic_inspection_car_id (car_id)
	)`,
}

// InitSchema creates the tables when they do not exist yet
func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	db.logger.Info("database schema initialized successfully")
	return nil
}
