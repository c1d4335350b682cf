package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/constants"
	apierrors "github.com/neemadeshwal/ERMS-sub000/internal/errors"
	"github.com/neemadeshwal/ERMS-sub000/internal/logging"
	"github.com/neemadeshwal/ERMS-sub000/internal/middleware"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
	"github.com/sirupsen/logrus"
)

// parseID reads a numeric path parameter. It writes the 400 response itself.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.InvalidID(c)
		return 0, false
	}
	return id, true
}

// parseOptionalID reads a numeric query parameter, nil when absent.
func parseOptionalID(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierrors.InvalidID(c)
		return nil, false
	}
	return &id, true
}

// identity returns the resolved caller or writes a 401.
func identity(c *gin.Context) (auth.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return auth.Identity{}, false
	}
	return id, true
}

// respondError maps service errors to API error responses
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Errors)
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "Insufficient permissions")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email already registered")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrEngineerNotFound):
		apierrors.NotFound(c, "Engineer not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, "Assignment not found")
	default:
		logging.Logger.WithFields(logrus.Fields{
			"request_id": c.GetString(constants.ContextKeyRequestID),
			"path":       c.FullPath(),
		}).WithError(err).Error("unhandled service error")
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}
