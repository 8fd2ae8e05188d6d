package auth

import (
	"errors"

	"boardshelf/backend/internal/apperr"
	"boardshelf/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for an unknown email and for a wrong
// password alike, so callers cannot tell the two apart.
var ErrInvalidCredentials = apperr.New(apperr.Unauthenticated, "Invalid account email or password")

// VerifyCredentials checks an email/password pair against the store and
// returns the matching account with its role preloaded.
//
// A missing account and a failed hash comparison both return
// ErrInvalidCredentials. Zero or multiple credential rows for the account
// indicate store corruption and return a Corrupt-kind error.
func VerifyCredentials(db *gorm.DB, email, password string) (*models.Account, error) {
	var account models.Account
	if err := db.Preload("Role").Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	var credentials []models.Credential
	if err := db.Where("account_id = ?", account.ID).Find(&credentials).Error; err != nil {
		return nil, err
	}
	if len(credentials) != 1 {
		return nil, apperr.New(apperr.Corrupt, "corrupt credential information")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credentials[0].PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &account, nil
}
