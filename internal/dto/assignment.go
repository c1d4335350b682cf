package dto

import (
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
)

// AssignmentDTO represents an assignment in API responses
type AssignmentDTO struct {
	ID                   uint64                    `json:"id"`
	EngineerID           uint64                    `json:"engineerId"`
	ProjectID            uint64                    `json:"projectId"`
	AllocationPercentage int                       `json:"allocationPercentage"`
	StartDate            time.Time                 `json:"startDate"`
	EndDate              time.Time                 `json:"endDate"`
	Role                 string                    `json:"role"`
	Status               models.AssignmentStatus   `json:"status"`
	Priority             models.AssignmentPriority `json:"priority"`
	Description          string                    `json:"description"`
	CreatedBy            uint64                    `json:"createdBy"`
	Engineer             *UserRefDTO               `json:"engineer,omitempty"`
	Project              *ProjectRefDTO            `json:"project,omitempty"`
	CreatedAt            time.Time                 `json:"createdAt"`
	UpdatedAt            time.Time                 `json:"updatedAt"`
}

// ProjectRefDTO is the short project form embedded in assignments
type ProjectRefDTO struct {
	ID       uint64               `json:"id"`
	Name     string               `json:"name"`
	Status   models.ProjectStatus `json:"status"`
	Progress int                  `json:"progress"`
}

// ToAssignmentDTO converts an Assignment model to AssignmentDTO
func ToAssignmentDTO(a models.Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:                   a.ID,
		EngineerID:           a.EngineerID,
		ProjectID:            a.ProjectID,
		AllocationPercentage: a.AllocationPercentage,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		Role:                 a.Role,
		Status:               a.Status,
		Priority:             a.Priority,
		Description:          a.Description,
		CreatedBy:            a.CreatedBy,
		Engineer:             toUserRef(a.Engineer),
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
	if a.Project.ID != 0 {
		dto.Project = &ProjectRefDTO{
			ID:       a.Project.ID,
			Name:     a.Project.Name,
			Status:   a.Project.Status,
			Progress: a.Project.Progress,
		}
	}
	return dto
}

// ToAssignmentDTOs converts a slice of assignments
func ToAssignmentDTOs(assignments []models.Assignment) []AssignmentDTO {
	return slice.Map(assignments, func(idx int, a models.Assignment) AssignmentDTO {
		return ToAssignmentDTO(a)
	})
}
