package models

import (
	"time"

	"github.com/neemadeshwal/ERMS-sub000/internal/constants"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleEngineer UserRole = "engineer"
	RoleManager  UserRole = "manager"
)

type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentContract EmploymentType = "contract"
)

type User struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Email           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash    string         `gorm:"type:varchar(255);not null" json:"-"`
	Role            UserRole       `gorm:"type:varchar(20);not null;default:'engineer'" json:"role"`
	Skills          []string       `gorm:"serializer:json" json:"skills"`
	Seniority       Seniority      `gorm:"type:varchar(20)" json:"seniority,omitempty"`
	EmploymentType  EmploymentType `gorm:"type:varchar(20)" json:"employment_type,omitempty"`
	Department      string         `gorm:"type:varchar(255)" json:"department,omitempty"`
	MaxCapacity     int            `gorm:"not null;default:0" json:"max_capacity"`
	CurrentCapacity int            `gorm:"not null;default:0" json:"current_capacity"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignments []Assignment `gorm:"foreignKey:EngineerID" json:"-"`
}

// AvailableCapacity is the part of MaxCapacity not yet allocated. It is never negative.
func (u User) AvailableCapacity() int {
	if u.CurrentCapacity >= u.MaxCapacity {
		return 0
	}
	return u.MaxCapacity - u.CurrentCapacity
}

// CapacityForEmployment returns the weekly capacity ceiling for an employment type.
func CapacityForEmployment(t EmploymentType) int {
	switch t {
	case EmploymentFullTime:
		return constants.FullTimeCapacity
	case EmploymentPartTime:
		return constants.PartTimeCapacity
	default:
		return 0
	}
}
