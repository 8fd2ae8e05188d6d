package auth

import (
	"net/http"

	"boardshelf/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware chain.
const (
	identityKey   = "identity"
	authorisedKey = "authorised"
)

// Authenticate creates a gin middleware that reads the token from the
// x-authentication-token header and attaches the decoded identity to the
// request context.
func Authenticate(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(TokenHeader)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied: no token provided"})
			return
		}

		identity, err := tm.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied: invalid token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// AdminCheck creates a gin middleware implementing the first authorisation
// stage: when the identity carries the admin role it flags the request as
// authorised. A non-admin identity passes through unflagged; rejection is
// deferred to RequireAuthorised so further role policies can hook in here
// without touching call sites.
// It must be used AFTER Authenticate.
func AdminCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			// This should not happen if Authenticate is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied: authentication required"})
			return
		}

		if identity.Role.Name == models.RoleAdmin {
			c.Set(authorisedKey, true)
		}

		c.Next()
	}
}

// RequireAuthorised creates a gin middleware implementing the second
// authorisation stage: the request proceeds only if an earlier stage set the
// authorised flag.
func RequireAuthorised() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(authorisedKey) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied: authorisation failed"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity attached by Authenticate.
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}
