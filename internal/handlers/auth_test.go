package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/constants"
	"github.com/neemadeshwal/ERMS-sub000/internal/dto"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionResponse struct {
	Success bool        `json:"success"`
	User    dto.UserDTO `json:"user"`
	Token   string      `json:"token"`
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupTestEnv(t)

	payload := map[string]any{
		"email":          "New@Example.com",
		"password":       "supersecret",
		"name":           "New Engineer",
		"skills":         []string{"Go", "React"},
		"seniority":      "mid",
		"employmentType": "part-time",
	}
	w := env.do(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response sessionResponse
	decode(t, w, &response)
	assert.True(t, response.Success)
	assert.Equal(t, "new@example.com", response.User.Email)
	assert.Equal(t, 50, response.User.MaxCapacity)
	assert.Equal(t, 0, response.User.CurrentCapacity)
	assert.Equal(t, []string{"go", "react"}, response.User.Skills)
	assert.NotEmpty(t, response.Token)
	assert.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")

	dup := env.do(t, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, dup.Code)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "bad",
		"password": "123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body errorBody
	decode(t, w, &body)
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)
	assert.Len(t, body.Details, 3)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
		Name:     "Existing",
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response sessionResponse
	decode(t, w, &response)
	assert.Equal(t, "existing@example.com", response.User.Email)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")

	// The session cookie alone authenticates follow-up requests.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	me := httptest.NewRecorder()
	env.router.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)

	bad := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)

	missing := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupTestEnv(t)

	session, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "current@example.com",
		Password: "supersecret",
		Name:     "Current",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c.Set(constants.ContextKeyIdentity, auth.IdentityOf(*session.User))

	NewAuthHandler(env.authService).GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		User dto.UserDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, session.User.ID, response.User.ID)

	unauth := env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, unauth.Code)
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	env := setupTestEnv(t)

	session, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:          "dev@example.com",
		Password:       "supersecret",
		Name:           "Dev",
		EmploymentType: "full-time",
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"name":   "Dev Renamed",
		"skills": []string{"Kotlin"},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response sessionResponse
	decode(t, w, &response)
	assert.Equal(t, "Dev Renamed", response.User.Name)
	assert.Equal(t, []string{"kotlin"}, response.User.Skills)
	assert.Equal(t, 100, response.User.MaxCapacity)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
