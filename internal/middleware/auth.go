package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/constants"
	apierrors "github.com/neemadeshwal/ERMS-sub000/internal/errors"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
)

// RequireAuth resolves the caller from a bearer token, falling back to the
// session cookie. Requests with neither are rejected with 401.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				apierrors.Unauthorized(c, "Invalid authorization header")
				c.Abort()
				return
			}

			id, err := tokens.Parse(strings.TrimSpace(tokenStr))
			if err != nil {
				msg := "Invalid token"
				if errors.Is(err, auth.ErrTokenExpired) {
					msg = "Token has expired"
				}
				apierrors.Unauthorized(c, msg)
				c.Abort()
				return
			}
			setIdentity(c, id)
			c.Next()
			return
		}

		id, ok := sessionIdentity(sessions.Default(c))
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		setIdentity(c, id)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not one of roles.
// It must run after RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		for _, role := range roles {
			if id.Role == role {
				c.Next()
				return
			}
		}
		apierrors.Forbidden(c, "Insufficient permissions")
		c.Abort()
	}
}

// SaveSession stores the identity in the session cookie.
func SaveSession(c *gin.Context, id auth.Identity) error {
	session := sessions.Default(c)
	session.Set(constants.SessionKeyUserID, id.ID)
	session.Set(constants.SessionKeyEmail, id.Email)
	session.Set(constants.SessionKeyRole, string(id.Role))
	return session.Save()
}

// ClearSession drops the session cookie.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

func sessionIdentity(session sessions.Session) (auth.Identity, bool) {
	userID, ok := toUint64(session.Get(constants.SessionKeyUserID))
	if !ok || userID == 0 {
		return auth.Identity{}, false
	}
	email, _ := session.Get(constants.SessionKeyEmail).(string)
	role, _ := session.Get(constants.SessionKeyRole).(string)

	return auth.Identity{ID: userID, Email: email, Role: models.UserRole(role)}, true
}

func setIdentity(c *gin.Context, id auth.Identity) {
	c.Set(constants.ContextKeyIdentity, id)
}

// GetIdentity retrieves the resolved caller from context
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	if !ok || id.IsZero() {
		return auth.Identity{}, false
	}
	return id, true
}

func toUint64(v any) (uint64, bool) {
	switch v := v.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
