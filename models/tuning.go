package models

import "time"

// Tuning represents a modification made to a car
type Tuning struct {
	TuningID          int64      `json:"tuning_id"`
	CarID             int64      `json:"car_id" validate:"required,gt=0"`
	TuningName        string     `json:"tuning_name" validate:"required,max=255"`
	TuningDate        Date       `json:"tuning_date"`
	TuningDescription string     `json:"tuning_description"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the table name for the Tuning model
func (Tuning) TableName() string {
	return "Tunings"
}
