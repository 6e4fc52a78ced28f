package dto

import "time"

type EquipmentSelection struct {
	EquipmentID uint `json:"equipment_id" validate:"required"`
	Quantity    int  `json:"quantity" validate:"required,min=1"`
}

type CreateBookingRequest struct {
	VenueID           uint                 `json:"venue_id" validate:"required"`
	EventTitle        string               `json:"event_title" validate:"required,max=255"`
	EventDescription  string               `json:"event_description"`
	StartDatetime     time.Time            `json:"start_datetime" validate:"required"`
	EndDatetime       time.Time            `json:"end_datetime" validate:"required"`
	ExpectedAttendees *int                 `json:"expected_attendees,omitempty" validate:"omitempty,min=1"`
	Equipment         []EquipmentSelection `json:"equipment,omitempty" validate:"dive"`
}

type UpdateBookingRequest struct {
	EventTitle        *string `json:"event_title,omitempty" validate:"omitempty,min=1,max=255"`
	EventDescription  *string `json:"event_description,omitempty"`
	ExpectedAttendees *int    `json:"expected_attendees,omitempty" validate:"omitempty,min=1"`
}

type ApproveBookingRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type CreateVenueRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity" validate:"required,min=1"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,min=0"`
	Amenities   []string `json:"amenities,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type UpdateVenueRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Capacity    *int     `json:"capacity,omitempty" validate:"omitempty,min=1"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,min=0"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type CreateEquipmentRequest struct {
	Name              string  `json:"name" validate:"required,max=255"`
	Description       string  `json:"description"`
	Category          string  `json:"category"`
	Quantity          int     `json:"quantity" validate:"min=0"`
	RentalRatePerUnit float64 `json:"rental_rate_per_unit" validate:"min=0"`
}

type CreateMaintenanceRequest struct {
	VenueID       *uint      `json:"venue_id,omitempty"`
	EquipmentID   *uint      `json:"equipment_id,omitempty"`
	Title         string     `json:"title" validate:"required,max=255"`
	Description   string     `json:"description" validate:"required"`
	Priority      string     `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

type AssignMaintenanceRequest struct {
	AssignedTo uint `json:"assigned_to" validate:"required"`
}

type UpdateMaintenanceStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=open in_progress completed cancelled"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateEquipmentRequest struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description       *string  `json:"description,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Quantity          *int     `json:"quantity,omitempty" validate:"omitempty,min=0"`
	RentalRatePerUnit *float64 `json:"rental_rate_per_unit,omitempty" validate:"omitempty,min=0"`
	IsActive          *bool    `json:"is_active,omitempty"`
}
