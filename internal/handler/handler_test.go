package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"boardshelf/backend/internal/auth"
	"boardshelf/backend/internal/database"
	"boardshelf/backend/internal/models"
)

// setupAPI wires a fresh in-memory database into the package-level handle
// and mounts the full route table.
func setupAPI(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One in-memory sqlite database per connection; keep the pool at one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedRoles(db))
	database.DB = db

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := gin.New()
	RegisterRoutes(router, tokens)
	return router, tokens
}

// doJSON performs a request with an optional JSON body and token header.
func doJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// seedAccount creates an account with the given role directly in the store.
func seedAccount(t *testing.T, email, password, roleName string) *models.Account {
	t.Helper()

	var role models.Role
	require.NoError(t, database.DB.Where("name = ?", roleName).First(&role).Error)

	account := models.Account{Email: email, RoleID: role.ID, Role: role}
	require.NoError(t, database.DB.Omit("Role").Create(&account).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, database.DB.Create(&models.Credential{AccountID: account.ID, PasswordHash: string(hash)}).Error)

	return &account
}

func tokenFor(t *testing.T, tokens *auth.TokenManager, account *models.Account) string {
	t.Helper()
	token, err := tokens.Issue(account)
	require.NoError(t, err)
	return token
}

func seedCategories(t *testing.T, names ...string) map[string]*models.Category {
	t.Helper()
	categories := make(map[string]*models.Category, len(names))
	for _, name := range names {
		category := &models.Category{Name: name}
		require.NoError(t, database.DB.Create(category).Error)
		categories[name] = category
	}
	return categories
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
