package models

import (
	"time"

	"gorm.io/gorm"
)

type AssignmentStatus string

const (
	AssignmentStatusActive    AssignmentStatus = "active"
	AssignmentStatusCompleted AssignmentStatus = "completed"
	AssignmentStatusCancelled AssignmentStatus = "cancelled"
	AssignmentStatusOnHold    AssignmentStatus = "on-hold"
)

type AssignmentPriority string

const (
	PriorityHigh   AssignmentPriority = "high"
	PriorityMedium AssignmentPriority = "medium"
	PriorityLow    AssignmentPriority = "low"
)

// Assignment commits a share of one engineer's weekly capacity to a project.
// Requests may carry a list of engineers; only the first one is stored.
type Assignment struct {
	ID                   uint64             `gorm:"primarykey" json:"id"`
	EngineerID           uint64             `gorm:"not null;index" json:"engineer_id"`
	ProjectID            uint64             `gorm:"not null;index" json:"project_id"`
	AllocationPercentage int                `gorm:"not null" json:"allocation_percentage"`
	StartDate            time.Time          `gorm:"not null" json:"start_date"`
	EndDate              time.Time          `gorm:"not null" json:"end_date"`
	Role                 string             `gorm:"type:varchar(100);not null" json:"role"`
	Status               AssignmentStatus   `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Priority             AssignmentPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Description          string             `gorm:"type:text" json:"description"`
	CreatedBy            uint64             `gorm:"not null" json:"created_by"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
	DeletedAt            gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relations
	Engineer User    `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
