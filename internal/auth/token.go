package auth

import (
	"time"

	"boardshelf/backend/internal/apperr"
	"boardshelf/backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenHeader is the request and response header carrying the signed token.
// It must be exposed to cross-origin callers (see the CORS setup in main).
const TokenHeader = "x-authentication-token"

// RoleClaim is the role part of the token identity.
type RoleClaim struct {
	ID   uint   `json:"roleid"`
	Name string `json:"rolename,omitempty"`
}

// Identity is the authenticated caller as embedded in the token. It is
// trusted at face value on parse; role changes are not reflected until
// re-login.
type Identity struct {
	AccountID uint      `json:"accountid"`
	Email     string    `json:"email"`
	Role      RoleClaim `json:"role"`
}

// Claims couples the identity with the registered JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	Identity
}

// TokenManager issues and parses signed tokens. The secret and token
// lifetime are fixed at construction.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager signing with the given symmetric
// secret. Tokens expire after ttl.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the account's identity.
func (tm *TokenManager) Issue(account *models.Account) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Identity: Identity{
			AccountID: account.ID,
			Email:     account.Email,
			Role: RoleClaim{
				ID:   account.Role.ID,
				Name: account.Role.Name,
			},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Parse verifies the signature and returns the embedded identity. No store
// lookup is performed.
func (tm *TokenManager) Parse(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.Unauthenticated, "Access denied: invalid token")
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.Unauthenticated, "Access denied: invalid token", err)
	}
	return &claims.Identity, nil
}
