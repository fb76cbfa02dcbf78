package models

import "time"

// FuelEfficiency represents one refuelling record
type FuelEfficiency struct {
	FeID        int64      `json:"fe_id"`
	CarID       int64      `json:"car_id" validate:"required,gt=0"`
	FeDate      Date       `json:"fe_date"`
	FeAmount    float32    `json:"fe_amount" validate:"gte=0"`
	FeUnitPrice float32    `json:"fe_unitprice" validate:"gte=0"`
	FeMileage   int        `json:"fe_mileage" validate:"gte=0"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the table name for the FuelEfficiency model
func (FuelEfficiency) TableName() string {
	return "FuelEfficiencies"
}

// TotalCost returns the amount paid for the refuelling
func (f *FuelEfficiency) TotalCost() float64 {
	return float64(f.FeAmount) * float64(f.FeUnitPrice)
}
