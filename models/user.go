package models

import "time"

// User represents an account row in the Users table
type User struct {
	UserID       int64      `json:"user_id"`
	UserEmail    string     `json:"user_email"`
	UserName     string     `json:"user_name"`
	UserPassword string     `json:"-"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "Users"
}

// UserCar links a user to a car they own
type UserCar struct {
	UserID int64 `json:"user_id"`
	CarID  int64 `json:"car_id"`
}

// TableName returns the table name for the UserCar model
func (UserCar) TableName() string {
	return "user_car"
}
