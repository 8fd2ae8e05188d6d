package models

// Credential holds the bcrypt hash for an account, one row per account.
// It is never serialized in any response.
type Credential struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	AccountID    uint   `gorm:"not null;index" json:"-"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}
