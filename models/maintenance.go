package models

import "time"

// Maintenance represents a service performed on a car
type Maintenance struct {
	MaintID          int64      `json:"maint_id"`
	CarID            int64      `json:"car_id" validate:"required,gt=0"`
	MaintType        string     `json:"maint_type" validate:"required,max=255"`
	MaintDate        Date       `json:"maint_date"`
	MaintDescription string     `json:"maint_description"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the table name for the Maintenance model
func (Maintenance) TableName() string {
	return "Maintenances"
}
