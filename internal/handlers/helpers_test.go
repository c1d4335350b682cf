package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/constants"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/repository"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
	"github.com/neemadeshwal/ERMS-sub000/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *auth.TokenManager
	authService *services.AuthService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	set := Set{
		Auth:        NewAuthHandler(authService),
		Engineers:   NewEngineerHandler(services.NewEngineerService(userRepo, assignmentRepo)),
		Projects:    NewProjectHandler(services.NewProjectService(projectRepo, userRepo)),
		Assignments: NewAssignmentHandler(services.NewAssignmentService(assignmentRepo, false)),
		Analytics:   NewAnalyticsHandler(services.NewAnalyticsService(userRepo, assignmentRepo)),
	}

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	RegisterRoutes(r, set, tokens)

	return testEnv{
		db:          db,
		router:      r,
		tokens:      tokens,
		authService: authService,
	}
}

// tokenFor issues a bearer token for a stored user.
func (env testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := env.tokens.Generate(auth.IdentityOf(*user))
	require.NoError(t, err)
	return token
}

func (env testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// errorBody mirrors the API error envelope.
type errorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}
