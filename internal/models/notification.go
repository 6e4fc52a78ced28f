package models

import "time"

type NotificationType string

const (
	NotifyNewBookingRequest NotificationType = "new_booking_request"
	NotifyBookingApproved   NotificationType = "booking_approved"
	NotifyBookingRejected   NotificationType = "booking_rejected"
	NotifyBookingCancelled  NotificationType = "booking_cancelled"
	NotifyBookingCompleted  NotificationType = "booking_completed"

	NotifyMaintenanceAssigned NotificationType = "maintenance_assigned"
	NotifyMaintenanceUpdated  NotificationType = "maintenance_updated"
)

// Notification is an in-app message for a user. Only users are notifiable,
// so the owner is a plain user_id rather than a polymorphic type+id pair.
type Notification struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"not null;index" json:"user_id"`
	Type             NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Title            string           `gorm:"not null" json:"title"`
	Message          string           `gorm:"not null" json:"message"`
	RelatedBookingID *uint            `json:"related_booking_id,omitempty"`
	IsRead           bool             `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
