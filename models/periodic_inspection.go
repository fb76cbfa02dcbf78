package models

import "time"

// PeriodicInspection represents a scheduled statutory inspection
type PeriodicInspection struct {
	PiID       int64      `json:"pi_id"`
	CarID      int64      `json:"car_id" validate:"required,gt=0"`
	PiName     string     `json:"pi_name" validate:"required,max=255"`
	PiDate     time.Time  `json:"pi_date"`
	PiNextDate time.Time  `json:"pi_nextdate" validate:"gtfield=PiDate"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the table name for the PeriodicInspection model
func (PeriodicInspection) TableName() string {
	return "PeriodicInspection"
}

// IsDue reports whether the next inspection date has been reached at now
func (p *PeriodicInspection) IsDue(now time.Time) bool {
	return !now.Before(p.PiNextDate)
}
