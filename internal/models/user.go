package models

import "time"

type UserRole string

const (
	RoleOrganizer UserRole = "ORGANIZER"
	RoleAdmin     UserRole = "ADMIN"
)

type User struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Name     string   `gorm:"not null" json:"name"`
	Email    string   `gorm:"not null;uniqueIndex" json:"email"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'ORGANIZER'" json:"role"`
	IsActive bool     `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
