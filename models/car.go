package models

import "time"

// Car represents a vehicle row in the Cars table
type Car struct {
	CarID         int64      `json:"car_id"`
	CarName       string     `json:"car_name" validate:"required,max=255"`
	CarModelNum   string     `json:"carmodelnum" validate:"max=255"`
	CarColor      string     `json:"car_color" validate:"max=255"`
	CarMileage    int        `json:"car_mileage" validate:"gte=0"`
	CarIsFlooding bool       `json:"car_isflooding"`
	CarIsSmoked   bool       `json:"car_issmoked"`
	CarImageURL   *string    `json:"car_image_url"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the table name for the Car model
func (Car) TableName() string {
	return "Cars"
}
