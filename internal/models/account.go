package models

import "time"

// Account represents a user account. The password lives in a separate
// Credential row and is never part of this struct.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;unique;not null" json:"email"`
	RoleID    uint      `gorm:"not null" json:"-"`
	Role      Role      `gorm:"foreignKey:RoleID" json:"role"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
