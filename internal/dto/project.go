package dto

import (
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID             uint64               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	StartDate      time.Time            `json:"startDate"`
	EndDate        *time.Time           `json:"endDate"`
	RequiredSkills []string             `json:"requiredSkills"`
	TeamSize       int                  `json:"teamSize"`
	Status         models.ProjectStatus `json:"status"`
	Progress       int                  `json:"progress"`
	ManagerID      uint64               `json:"managerId"`
	Manager        *UserRefDTO          `json:"manager,omitempty"`
	Assignments    []AssignmentDTO      `json:"assignments,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Success    bool         `json:"success"`
	Projects   []ProjectDTO `json:"projects"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalCount int64        `json:"totalCount"`
	TotalPages int          `json:"totalPages"`
}

// SuitableEngineerDTO is an engineer ranked for a project
type SuitableEngineerDTO struct {
	Engineer          UserDTO  `json:"engineer"`
	MatchingSkills    []string `json:"matchingSkills"`
	AvailableCapacity int      `json:"availableCapacity"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	skills := project.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return ProjectDTO{
		ID:             project.ID,
		Name:           project.Name,
		Description:    project.Description,
		StartDate:      project.StartDate,
		EndDate:        project.EndDate,
		RequiredSkills: skills,
		TeamSize:       project.TeamSize,
		Status:         project.Status,
		Progress:       project.Progress,
		ManagerID:      project.ManagerID,
		Manager:        toUserRef(project.Manager),
		Assignments:    ToAssignmentDTOs(project.Assignments),
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	return slice.Map(projects, func(idx int, p models.Project) ProjectDTO {
		return ToProjectDTO(p)
	})
}

// ToSuitableEngineerDTOs converts ranked engineers
func ToSuitableEngineerDTOs(ranked []services.SuitableEngineer) []SuitableEngineerDTO {
	return slice.Map(ranked, func(idx int, s services.SuitableEngineer) SuitableEngineerDTO {
		return SuitableEngineerDTO{
			Engineer:          ToUserDTO(s.Engineer),
			MatchingSkills:    s.MatchingSkills,
			AvailableCapacity: s.AvailableCapacity,
		}
	})
}
