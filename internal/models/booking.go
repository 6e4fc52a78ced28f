package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// IsTerminal reports whether no further transition may leave the status.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

type Booking struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	UserID            uint          `gorm:"not null;index" json:"user_id"`
	VenueID           uint          `gorm:"not null;index" json:"venue_id"`
	EventTitle        string        `gorm:"not null" json:"event_title"`
	EventDescription  string        `json:"event_description"`
	StartDatetime     time.Time     `gorm:"not null" json:"start_datetime"`
	EndDatetime       time.Time     `gorm:"not null" json:"end_datetime"`
	ExpectedAttendees *int          `json:"expected_attendees,omitempty"`
	Status            BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RejectionReason   *string       `json:"rejection_reason,omitempty"`
	Notes             *string       `json:"notes,omitempty"`
	TotalCost         float64       `gorm:"type:numeric(10,2);not null;default:0" json:"total_cost"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User      *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Venue     *Venue             `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	Equipment []BookingEquipment `gorm:"foreignKey:BookingID" json:"equipment,omitempty"`
}

// DurationInHours returns the booked window length, fractional hours allowed.
func (b *Booking) DurationInHours() float64 {
	return b.EndDatetime.Sub(b.StartDatetime).Hours()
}
