package models

import "time"

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
	PriorityUrgent MaintenancePriority = "urgent"
)

type MaintenanceStatus string

const (
	MaintenanceOpen       MaintenanceStatus = "open"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

func (s MaintenanceStatus) IsTerminal() bool {
	return s == MaintenanceCompleted || s == MaintenanceCancelled
}

// MaintenanceRequest tracks a repair or upkeep issue against a venue or a
// piece of equipment. At least one of VenueID/EquipmentID is set.
type MaintenanceRequest struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	VenueID       *uint               `gorm:"index" json:"venue_id,omitempty"`
	EquipmentID   *uint               `json:"equipment_id,omitempty"`
	ReportedBy    uint                `gorm:"not null;index" json:"reported_by"`
	Title         string              `gorm:"not null" json:"title"`
	Description   string              `gorm:"not null" json:"description"`
	Priority      MaintenancePriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status        MaintenanceStatus   `gorm:"type:varchar(20);not null;default:'open';index:idx_maintenance_status_priority" json:"status"`
	ScheduledDate *time.Time          `json:"scheduled_date,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
	AssignedTo    *uint               `gorm:"index" json:"assigned_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Venue        *Venue     `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	Equipment    *Equipment `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
	AssignedUser *User      `gorm:"foreignKey:AssignedTo" json:"assigned_user,omitempty"`
}
