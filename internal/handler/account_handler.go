package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"boardshelf/backend/internal/apperr"
	"boardshelf/backend/internal/auth"
	"boardshelf/backend/internal/database"
	"boardshelf/backend/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CredentialsInput defines the payload for login and account creation.
type CredentialsInput struct {
	Email    string `json:"email" binding:"required,email,max=255" example:"player@example.com"`
	Password string `json:"password" binding:"required,min=3" example:"secret123"`
}

// UpdateOwnInput defines the payload for updating the caller's own account.
// Only the password can change; email and role are immutable here.
type UpdateOwnInput struct {
	Password string `json:"password" binding:"omitempty,min=3"`
}

// AccountQuery defines the supported account list filters.
type AccountQuery struct {
	Email  string `form:"email" binding:"omitempty,email"`
	RoleID uint   `form:"roleid" binding:"omitempty,min=1"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates an email/password pair. The signed token is returned in the x-authentication-token response header; the body carries the account.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        input body CredentialsInput true "Credentials"
// @Success      200  {object}  models.Account
// @Failure      400  {object}  ErrorResponse "Badly formatted request"
// @Failure      401  {object}  ErrorResponse "Invalid account email or password"
// @Router       /accounts/login [post]
func Login(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CredentialsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
			return
		}

		account, err := auth.VerifyCredentials(database.DB, input.Email, input.Password)
		if err != nil {
			// Whatever actually failed, the caller only ever learns that
			// the credentials did not check out.
			if apperr.KindOf(err) != apperr.Unauthenticated {
				log.Printf("login failed for reasons other than credentials: %v", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid account email or password"})
			return
		}

		token, err := tm.Issue(account)
		if err != nil {
			log.Printf("token signing failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid account email or password"})
			return
		}

		c.Header(auth.TokenHeader, token)
		c.JSON(http.StatusOK, account)
	}
}

// CreateAccount godoc
// @Summary      Create an account
// @Description  Creates an account with the default member role and stores its hashed password.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        input body CredentialsInput true "Credentials"
// @Success      201  {object}  models.Account
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Account already exists"
// @Router       /accounts [post]
func CreateAccount(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	var account models.Account
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("name = ?", models.RoleMember).First(&role).Error; err != nil {
			return err
		}

		account = models.Account{Email: input.Email, RoleID: role.ID, Role: role}
		if err := tx.Omit("Role").Create(&account).Error; err != nil {
			return err
		}

		credential := models.Credential{AccountID: account.ID, PasswordHash: string(hashedPassword)}
		return tx.Create(&credential).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, account)
}

// GetAccounts godoc
// @Summary      List accounts
// @Description  Lists accounts, optionally filtered by email or role id. When both are given, email wins.
// @Tags         accounts
// @Produce      json
// @Security     TokenAuth
// @Param        email  query  string  false  "Filter by email"
// @Param        roleid query  int     false  "Filter by role id"
// @Success      200  {array}   models.Account
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Admin access required"
// @Router       /accounts [get]
func GetAccounts(c *gin.Context) {
	var query AccountQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
		return
	}

	dbQuery := database.DB.Preload("Role")
	if query.Email != "" {
		dbQuery = dbQuery.Where("email = ?", query.Email)
	} else if query.RoleID != 0 {
		dbQuery = dbQuery.Where("role_id = ?", query.RoleID)
	}

	accounts := []models.Account{}
	if err := dbQuery.Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accounts"})
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// GetOwnAccount godoc
// @Summary      Get own account
// @Description  Retrieves the account identified by the caller's token.
// @Tags         accounts
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  models.Account
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Account not found"
// @Router       /accounts/own [get]
func GetOwnAccount(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied: authentication required"})
		return
	}

	var account models.Account
	if err := database.DB.Preload("Role").First(&account, identity.AccountID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// GetAccountByID godoc
// @Summary      Get account by ID
// @Tags         accounts
// @Produce      json
// @Security     TokenAuth
// @Param        id path int true "Account ID"
// @Success      200  {object}  models.Account
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Account not found"
// @Router       /accounts/{id} [get]
func GetAccountByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
		return
	}

	var account models.Account
	if err := database.DB.Preload("Role").First(&account, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateOwnAccount godoc
// @Summary      Update own account
// @Description  Optionally changes the caller's password. Email and role are immutable through this endpoint.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        input body UpdateOwnInput true "Fields to update"
// @Success      200  {object}  models.Account
// @Failure      400  {object}  ErrorResponse "Password does not match requirements"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Account not found"
// @Router       /accounts/own [put]
func UpdateOwnAccount(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied: authentication required"})
		return
	}

	var input UpdateOwnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password does not match requirements"})
		return
	}

	var account models.Account
	if err := database.DB.Preload("Role").First(&account, identity.AccountID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		err = database.DB.Model(&models.Credential{}).
			Where("account_id = ?", account.ID).
			Update("password_hash", string(hashedPassword)).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
			return
		}
	}

	c.JSON(http.StatusOK, account)
}

// DeleteAccount godoc
// @Summary      Delete an account
// @Description  Deletes an account and its credential. Admins cannot delete their own account.
// @Tags         accounts
// @Produce      json
// @Security     TokenAuth
// @Param        id path int true "Account ID"
// @Success      200  {object}  models.Account "The deleted account"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Admin access required"
// @Failure      403  {object}  ErrorResponse "Cannot delete own account"
// @Failure      404  {object}  ErrorResponse "Account not found"
// @Router       /accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied: authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
		return
	}

	if identity.AccountID == uint(id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Request denied: cannot delete account"})
		return
	}

	var account models.Account
	if err := database.DB.Preload("Role").First(&account, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.Credential{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, account.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	c.JSON(http.StatusOK, account)
}
