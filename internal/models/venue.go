package models

import "time"

type Venue struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null" json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Capacity    int      `gorm:"not null" json:"capacity"`
	HourlyRate  *float64 `gorm:"type:numeric(10,2)" json:"hourly_rate,omitempty"`
	Amenities   string   `gorm:"type:jsonb;default:'[]'" json:"amenities"`
	IsActive    bool     `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
