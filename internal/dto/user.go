package dto

import (
	"time"

	"github.com/neemadeshwal/ERMS-sub000/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID              uint64                `json:"id"`
	Email           string                `json:"email"`
	Name            string                `json:"name"`
	Role            models.UserRole       `json:"role"`
	Skills          []string              `json:"skills"`
	Seniority       models.Seniority      `json:"seniority,omitempty"`
	EmploymentType  models.EmploymentType `json:"employmentType,omitempty"`
	Department      string                `json:"department,omitempty"`
	MaxCapacity     int                   `json:"maxCapacity"`
	CurrentCapacity int                   `json:"currentCapacity"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// UserRefDTO is the short form embedded in other resources
type UserRefDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Role:            user.Role,
		Skills:          skills,
		Seniority:       user.Seniority,
		EmploymentType:  user.EmploymentType,
		Department:      user.Department,
		MaxCapacity:     user.MaxCapacity,
		CurrentCapacity: user.CurrentCapacity,
		CreatedAt:       user.CreatedAt,
	}
}

// toUserRef returns nil for relations that were not loaded
func toUserRef(user models.User) *UserRefDTO {
	if user.ID == 0 {
		return nil
	}
	return &UserRefDTO{ID: user.ID, Name: user.Name, Email: user.Email}
}
