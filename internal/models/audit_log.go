package models

import "time"

type AuditAction string

const (
	ActionBookingCreated   AuditAction = "booking_created"
	ActionBookingApproved  AuditAction = "booking_approved"
	ActionBookingRejected  AuditAction = "booking_rejected"
	ActionBookingCancelled AuditAction = "booking_cancelled"
	ActionBookingCompleted AuditAction = "booking_completed"
	ActionVenueCreated     AuditAction = "venue_created"
	ActionVenueUpdated     AuditAction = "venue_updated"
	ActionVenueDeleted     AuditAction = "venue_deleted"
	ActionEquipmentCreated AuditAction = "equipment_created"
	ActionEquipmentUpdated AuditAction = "equipment_updated"
	ActionEquipmentDeleted AuditAction = "equipment_deleted"

	ActionMaintenanceCreated  AuditAction = "maintenance_created"
	ActionMaintenanceAssigned AuditAction = "maintenance_assigned"
	ActionMaintenanceUpdated  AuditAction = "maintenance_updated"
)

// AuditLog rows are append-only; there is no update path and no UpdatedAt.
type AuditLog struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	EventID     string      `gorm:"type:varchar(36);not null;uniqueIndex" json:"event_id"`
	Action      AuditAction `gorm:"type:varchar(40);not null;index" json:"action"`
	SubjectType string      `gorm:"type:varchar(40);not null" json:"subject_type"`
	SubjectID   uint        `gorm:"not null" json:"subject_id"`
	OldValues   []byte      `gorm:"type:jsonb" json:"old_values,omitempty"`
	NewValues   []byte      `gorm:"type:jsonb" json:"new_values,omitempty"`
	Description string      `json:"description"`
	ActorID     *uint       `gorm:"index" json:"actor_id,omitempty"`
	IP          string      `json:"ip,omitempty"`
	UserAgent   string      `json:"user_agent,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
