package auth

import "github.com/neemadeshwal/ERMS-sub000/internal/models"

// Identity is the resolved caller of a request.
type Identity struct {
	ID    uint64          `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// IsZero reports whether no caller was resolved.
func (i Identity) IsZero() bool {
	return i.ID == 0
}

func (i Identity) IsManager() bool {
	return i.Role == models.RoleManager
}

// IdentityOf builds the identity for a stored user.
func IdentityOf(user models.User) Identity {
	return Identity{ID: user.ID, Email: user.Email, Role: user.Role}
}
