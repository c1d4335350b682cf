package dto

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
)

// CapacityDTO is an engineer's workload snapshot
type CapacityDTO struct {
	Engineer          UserDTO         `json:"engineer"`
	MaxCapacity       int             `json:"maxCapacity"`
	CurrentCapacity   int             `json:"currentCapacity"`
	AvailableCapacity int             `json:"availableCapacity"`
	ActiveAssignments []AssignmentDTO `json:"activeAssignments"`
}

// EngineerUtilizationDTO is one row of the utilization report
type EngineerUtilizationDTO struct {
	Engineer          UserRefDTO `json:"engineer"`
	MaxCapacity       int        `json:"maxCapacity"`
	CurrentCapacity   int        `json:"currentCapacity"`
	ActiveAssignments int        `json:"activeAssignments"`
	Utilization       float64    `json:"utilization"`
}

// UtilizationDTO is the team utilization report
type UtilizationDTO struct {
	Engineers          []EngineerUtilizationDTO `json:"engineers"`
	TotalMaxCapacity   int                      `json:"totalMaxCapacity"`
	TotalCurrent       int                      `json:"totalCurrentCapacity"`
	TeamUtilization    float64                  `json:"teamUtilization"`
	OverAllocated      []UserRefDTO             `json:"overAllocated"`
	UnderUtilized      []UserRefDTO             `json:"underUtilized"`
	ActiveAssignments  int                      `json:"activeAssignments"`
	ActiveProjectCount int                      `json:"activeProjects"`
}

// ToCapacityDTO converts a capacity snapshot
func ToCapacityDTO(c services.Capacity) CapacityDTO {
	return CapacityDTO{
		Engineer:          ToUserDTO(c.Engineer),
		MaxCapacity:       c.MaxCapacity,
		CurrentCapacity:   c.CurrentCapacity,
		AvailableCapacity: c.AvailableCapacity,
		ActiveAssignments: ToAssignmentDTOs(c.ActiveAssignments),
	}
}

// ToUtilizationDTO converts a utilization report
func ToUtilizationDTO(r services.UtilizationReport) UtilizationDTO {
	ref := func(idx int, u models.User) UserRefDTO {
		return UserRefDTO{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return UtilizationDTO{
		Engineers: slice.Map(r.Engineers, func(idx int, e services.EngineerUtilization) EngineerUtilizationDTO {
			return EngineerUtilizationDTO{
				Engineer:          ref(idx, e.Engineer),
				MaxCapacity:       e.Engineer.MaxCapacity,
				CurrentCapacity:   e.Engineer.CurrentCapacity,
				ActiveAssignments: e.ActiveAssignments,
				Utilization:       e.Utilization,
			}
		}),
		TotalMaxCapacity:   r.TotalMaxCapacity,
		TotalCurrent:       r.TotalCurrent,
		TeamUtilization:    r.TeamUtilization,
		OverAllocated:      slice.Map(r.OverAllocated, ref),
		UnderUtilized:      slice.Map(r.UnderUtilized, ref),
		ActiveAssignments:  r.ActiveAssignments,
		ActiveProjectCount: r.ActiveProjectCount,
	}
}
