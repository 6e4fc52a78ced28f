package models

import "time"

type Equipment struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"not null" json:"name"`
	Description       string  `json:"description"`
	Category          string  `json:"category"`
	Quantity          int     `gorm:"not null;default:0" json:"quantity"`
	RentalRatePerUnit float64 `gorm:"type:numeric(10,2);not null;default:0" json:"rental_rate_per_unit"`
	IsActive          bool    `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingEquipment links a booking to requested equipment. Rate and subtotal
// are snapshotted when the booking is approved so later rate edits do not
// change historical costs.
type BookingEquipment struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	BookingID         uint    `gorm:"not null;index" json:"booking_id"`
	EquipmentID       uint    `gorm:"not null" json:"equipment_id"`
	QuantityRequested int     `gorm:"not null" json:"quantity_requested"`
	RatePerUnit       float64 `gorm:"type:numeric(10,2);not null;default:0" json:"rate_per_unit"`
	Subtotal          float64 `gorm:"type:numeric(10,2);not null;default:0" json:"subtotal"`

	Equipment *Equipment `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
}

func (BookingEquipment) TableName() string {
	return "booking_equipment"
}
