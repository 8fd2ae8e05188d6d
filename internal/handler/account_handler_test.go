package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"boardshelf/backend/internal/database"
	"boardshelf/backend/internal/models"
)

func TestCreateAccount_ThenLogin(t *testing.T) {
	router, tokens := setupAPI(t)

	w := doJSON(router, http.MethodPost, "/api/accounts", CredentialsInput{
		Email: "new@example.com", Password: "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Account
	decodeBody(t, w, &created)
	require.Equal(t, "new@example.com", created.Email)
	require.Equal(t, models.RoleMember, created.Role.Name)

	w = doJSON(router, http.MethodPost, "/api/accounts/login", CredentialsInput{
		Email: "new@example.com", Password: "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	token := w.Header().Get("x-authentication-token")
	require.NotEmpty(t, token)

	identity, err := tokens.Parse(token)
	require.NoError(t, err)
	require.Equal(t, created.ID, identity.AccountID)
	require.Equal(t, "new@example.com", identity.Email)
	require.Equal(t, models.RoleMember, identity.Role.Name)
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	router, _ := setupAPI(t)

	input := CredentialsInput{Email: "dup@example.com", Password: "secret123"}
	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/accounts", input, "").Code)

	w := doJSON(router, http.MethodPost, "/api/accounts", input, "")
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateAccount_MalformedInput(t *testing.T) {
	router, _ := setupAPI(t)

	cases := []CredentialsInput{
		{Email: "not-an-email", Password: "secret123"},
		{Email: "ok@example.com", Password: "no"},
		{Email: "", Password: "secret123"},
	}
	for _, input := range cases {
		w := doJSON(router, http.MethodPost, "/api/accounts", input, "")
		require.Equal(t, http.StatusBadRequest, w.Code, "input %+v", input)
	}
}

func TestLogin_FailuresAreGeneric(t *testing.T) {
	router, _ := setupAPI(t)
	seedAccount(t, "known@example.com", "secret123", models.RoleMember)

	wrongPassword := doJSON(router, http.MethodPost, "/api/accounts/login", CredentialsInput{
		Email: "known@example.com", Password: "wrong",
	}, "")
	unknownEmail := doJSON(router, http.MethodPost, "/api/accounts/login", CredentialsInput{
		Email: "ghost@example.com", Password: "secret123",
	}, "")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Identical responses: no account enumeration through the login route.
	require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestGetAccounts_RequiresAdmin(t *testing.T) {
	router, tokens := setupAPI(t)
	member := seedAccount(t, "member@example.com", "secret123", models.RoleMember)
	admin := seedAccount(t, "admin@example.com", "secret123", models.RoleAdmin)

	require.Equal(t, http.StatusUnauthorized, doJSON(router, http.MethodGet, "/api/accounts", nil, "").Code)
	require.Equal(t, http.StatusUnauthorized, doJSON(router, http.MethodGet, "/api/accounts", nil, tokenFor(t, tokens, member)).Code)

	w := doJSON(router, http.MethodGet, "/api/accounts", nil, tokenFor(t, tokens, admin))
	require.Equal(t, http.StatusOK, w.Code)

	var accounts []models.Account
	decodeBody(t, w, &accounts)
	require.Len(t, accounts, 2)
}

func TestGetAccounts_Filters(t *testing.T) {
	router, tokens := setupAPI(t)
	seedAccount(t, "member@example.com", "secret123", models.RoleMember)
	admin := seedAccount(t, "admin@example.com", "secret123", models.RoleAdmin)
	adminToken := tokenFor(t, tokens, admin)

	w := doJSON(router, http.MethodGet, "/api/accounts?email=member@example.com", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	var accounts []models.Account
	decodeBody(t, w, &accounts)
	require.Len(t, accounts, 1)
	require.Equal(t, "member@example.com", accounts[0].Email)

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/accounts?roleid=%d", admin.RoleID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &accounts)
	require.Len(t, accounts, 1)
	require.Equal(t, "admin@example.com", accounts[0].Email)

	w = doJSON(router, http.MethodGet, "/api/accounts?email=not-an-email", nil, adminToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOwnAccount(t *testing.T) {
	router, tokens := setupAPI(t)
	member := seedAccount(t, "member@example.com", "secret123", models.RoleMember)

	w := doJSON(router, http.MethodGet, "/api/accounts/own", nil, tokenFor(t, tokens, member))
	require.Equal(t, http.StatusOK, w.Code)

	var account models.Account
	decodeBody(t, w, &account)
	require.Equal(t, member.ID, account.ID)
	require.Equal(t, "member@example.com", account.Email)
}

func TestGetAccountByID(t *testing.T) {
	router, tokens := setupAPI(t)
	member := seedAccount(t, "member@example.com", "secret123", models.RoleMember)
	admin := seedAccount(t, "admin@example.com", "secret123", models.RoleAdmin)
	adminToken := tokenFor(t, tokens, admin)

	w := doJSON(router, http.MethodGet, fmt.Sprintf("/api/accounts/%d", member.ID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, "/api/accounts/99999", nil, adminToken).Code)
	require.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/api/accounts/zero", nil, adminToken).Code)
}

func TestUpdateOwnAccount_ChangesPassword(t *testing.T) {
	router, tokens := setupAPI(t)
	member := seedAccount(t, "member@example.com", "oldpassword", models.RoleMember)
	token := tokenFor(t, tokens, member)

	w := doJSON(router, http.MethodPut, "/api/accounts/own", UpdateOwnInput{Password: "newpassword"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	old := doJSON(router, http.MethodPost, "/api/accounts/login", CredentialsInput{
		Email: "member@example.com", Password: "oldpassword",
	}, "")
	require.Equal(t, http.StatusUnauthorized, old.Code)

	fresh := doJSON(router, http.MethodPost, "/api/accounts/login", CredentialsInput{
		Email: "member@example.com", Password: "newpassword",
	}, "")
	require.Equal(t, http.StatusOK, fresh.Code)
}

func TestUpdateOwnAccount_ShortPassword(t *testing.T) {
	router, tokens := setupAPI(t)
	member := seedAccount(t, "member@example.com", "secret123", models.RoleMember)

	w := doJSON(router, http.MethodPut, "/api/accounts/own", UpdateOwnInput{Password: "no"}, tokenFor(t, tokens, member))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAccount(t *testing.T) {
	router, tokens := setupAPI(t)
	member := seedAccount(t, "member@example.com", "secret123", models.RoleMember)
	admin := seedAccount(t, "admin@example.com", "secret123", models.RoleAdmin)
	adminToken := tokenFor(t, tokens, admin)

	// Self-delete is refused.
	w := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/accounts/%d", admin.ID), nil, adminToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/accounts/%d", member.ID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var deleted models.Account
	decodeBody(t, w, &deleted)
	require.Equal(t, "member@example.com", deleted.Email)

	require.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, fmt.Sprintf("/api/accounts/%d", member.ID), nil, adminToken).Code)

	// The credential row went with the account.
	var credentials int64
	require.NoError(t, database.DB.Model(&models.Credential{}).Where("account_id = ?", member.ID).Count(&credentials).Error)
	require.Zero(t, credentials)
}
