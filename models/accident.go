package models

import "time"

// Accident represents an accident a car was involved in
type Accident struct {
	AccidentID          int64      `json:"accident_id"`
	CarID               int64      `json:"car_id" validate:"required,gt=0"`
	AccidentDate        Date       `json:"accident_date"`
	AccidentDescription string     `json:"accident_description"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the table name for the Accident model
func (Accident) TableName() string {
	return "Accidents"
}
