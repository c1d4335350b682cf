package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

type Project struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	StartDate      time.Time      `gorm:"not null" json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	RequiredSkills []string       `gorm:"serializer:json" json:"required_skills"`
	TeamSize       int            `gorm:"not null;default:1" json:"team_size"`
	Status         ProjectStatus  `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	Progress       int            `gorm:"not null;default:0" json:"progress"`
	ManagerID      uint64         `gorm:"not null;index" json:"manager_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager     User         `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:ProjectID" json:"assignments,omitempty"`
}
