package models

// Role names known to the system. The role table is seeded at startup and is
// not mutable through the API.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Role represents an account role. Exactly one role name (admin) is
// privileged.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;unique;not null" json:"name"`
}
