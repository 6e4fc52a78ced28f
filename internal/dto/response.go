package dto

import (
	"time"

	"github.com/unievents/venue-booking-service/internal/models"
)

type BookingEquipmentResponse struct {
	EquipmentID       uint    `json:"equipment_id"`
	Name              string  `json:"name,omitempty"`
	QuantityRequested int     `json:"quantity_requested"`
	RatePerUnit       float64 `json:"rate_per_unit"`
	Subtotal          float64 `json:"subtotal"`
}

type BookingResponse struct {
	ID                uint                       `json:"id"`
	UserID            uint                       `json:"user_id"`
	VenueID           uint                       `json:"venue_id"`
	VenueName         string                     `json:"venue_name,omitempty"`
	EventTitle        string                     `json:"event_title"`
	EventDescription  string                     `json:"event_description,omitempty"`
	StartDatetime     time.Time                  `json:"start_datetime"`
	EndDatetime       time.Time                  `json:"end_datetime"`
	ExpectedAttendees *int                       `json:"expected_attendees,omitempty"`
	Status            models.BookingStatus       `json:"status"`
	RejectionReason   *string                    `json:"rejection_reason,omitempty"`
	Notes             *string                    `json:"notes,omitempty"`
	TotalCost         float64                    `json:"total_cost"`
	Equipment         []BookingEquipmentResponse `json:"equipment,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
}

type AvailabilityResponse struct {
	VenueID   uint      `json:"venue_id"`
	Start     time.Time `json:"start_datetime"`
	End       time.Time `json:"end_datetime"`
	Available bool      `json:"available"`
}

type MaintenanceResponse struct {
	ID            uint                       `json:"id"`
	VenueID       *uint                      `json:"venue_id,omitempty"`
	VenueName     string                     `json:"venue_name,omitempty"`
	EquipmentID   *uint                      `json:"equipment_id,omitempty"`
	EquipmentName string                     `json:"equipment_name,omitempty"`
	ReportedBy    uint                       `json:"reported_by"`
	Title         string                     `json:"title"`
	Description   string                     `json:"description"`
	Priority      models.MaintenancePriority `json:"priority"`
	Status        models.MaintenanceStatus   `json:"status"`
	ScheduledDate *time.Time                 `json:"scheduled_date,omitempty"`
	Notes         *string                    `json:"notes,omitempty"`
	AssignedTo    *uint                      `json:"assigned_to,omitempty"`
	AssignedName  string                     `json:"assigned_name,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:                b.ID,
		UserID:            b.UserID,
		VenueID:           b.VenueID,
		EventTitle:        b.EventTitle,
		EventDescription:  b.EventDescription,
		StartDatetime:     b.StartDatetime,
		EndDatetime:       b.EndDatetime,
		ExpectedAttendees: b.ExpectedAttendees,
		Status:            b.Status,
		RejectionReason:   b.RejectionReason,
		Notes:             b.Notes,
		TotalCost:         b.TotalCost,
		CreatedAt:         b.CreatedAt,
	}
	if b.Venue != nil {
		resp.VenueName = b.Venue.Name
	}
	for _, row := range b.Equipment {
		item := BookingEquipmentResponse{
			EquipmentID:       row.EquipmentID,
			QuantityRequested: row.QuantityRequested,
			RatePerUnit:       row.RatePerUnit,
			Subtotal:          row.Subtotal,
		}
		if row.Equipment != nil {
			item.Name = row.Equipment.Name
		}
		resp.Equipment = append(resp.Equipment, item)
	}
	return resp
}

func ToMaintenanceResponse(m *models.MaintenanceRequest) MaintenanceResponse {
	resp := MaintenanceResponse{
		ID:            m.ID,
		VenueID:       m.VenueID,
		EquipmentID:   m.EquipmentID,
		ReportedBy:    m.ReportedBy,
		Title:         m.Title,
		Description:   m.Description,
		Priority:      m.Priority,
		Status:        m.Status,
		ScheduledDate: m.ScheduledDate,
		Notes:         m.Notes,
		AssignedTo:    m.AssignedTo,
		CreatedAt:     m.CreatedAt,
	}
	if m.Venue != nil {
		resp.VenueName = m.Venue.Name
	}
	if m.Equipment != nil {
		resp.EquipmentName = m.Equipment.Name
	}
	if m.AssignedUser != nil {
		resp.AssignedName = m.AssignedUser.Name
	}
	return resp
}
