package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/dto"
	apierrors "github.com/neemadeshwal/ERMS-sub000/internal/errors"
	"github.com/neemadeshwal/ERMS-sub000/internal/middleware"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates an account and signs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := middleware.SaveSession(c, auth.IdentityOf(*session.User)); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    dto.ToUserDTO(*session.User),
		"token":   session.Token,
	})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required")
		return
	}

	session, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := middleware.SaveSession(c, auth.IdentityOf(*session.User)); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.ToUserDTO(*session.User),
		"token":   session.Token,
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.ToUserDTO(*user),
	})
}

// UpdateProfile updates the caller's own profile fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	type ProfileRequest struct {
		Name       *string           `json:"name"`
		Skills     []string          `json:"skills"`
		Seniority  *models.Seniority `json:"seniority"`
		Department *string           `json:"department"`
	}

	id, ok := identity(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), id, services.ProfileInput{
		Name:       req.Name,
		Skills:     req.Skills,
		Seniority:  req.Seniority,
		Department: req.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.ToUserDTO(*user),
	})
}
