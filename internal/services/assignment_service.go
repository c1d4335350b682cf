package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/logging"
	"github.com/neemadeshwal/ERMS-sub000/internal/metrics"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/repository"
	"github.com/neemadeshwal/ERMS-sub000/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AssignmentInput is the payload of assignment create and update requests.
type AssignmentInput struct {
	EngineerID           uint64                    `json:"engineerId" validate:"required"`
	ProjectID            uint64                    `json:"projectId" validate:"required"`
	AllocationPercentage int                       `json:"allocationPercentage" validate:"min=1,max=100"`
	Role                 string                    `json:"role" validate:"required"`
	StartDate            string                    `json:"startDate" validate:"required,date"`
	EndDate              string                    `json:"endDate" validate:"required,date"`
	Status               models.AssignmentStatus   `json:"status" validate:"oneof=active completed on-hold"`
	Priority             models.AssignmentPriority `json:"priority" validate:"oneof=high medium low"`
	Description          string                    `json:"description" validate:"min=5"`
}

var assignmentMessages = map[string]string{
	"engineerId.required":      "Engineer is required",
	"projectId.required":       "Project is required",
	"allocationPercentage.min": "Allocation must be between 1 and 100",
	"allocationPercentage.max": "Allocation must be between 1 and 100",
	"role.required":            "Role is required",
	"startDate.required":       "Start date is required",
	"startDate.date":           "Start date must be a valid date",
	"endDate.required":         "End date is required",
	"endDate.date":             "End date must be a valid date",
	"status.oneof":             "Status must be one of active, completed, on-hold",
	"priority.oneof":           "Priority must be one of high, medium, low",
	"description.min":          "Description must be at least 5 characters",
}

func (in *AssignmentInput) normalize() {
	in.Role = strings.TrimSpace(in.Role)
	in.Description = strings.TrimSpace(in.Description)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
}

// apply copies a validated input onto an assignment.
func (in AssignmentInput) apply(a *models.Assignment) {
	start, _ := utils.ParseDate(in.StartDate)
	end, _ := utils.ParseDate(in.EndDate)

	a.EngineerID = in.EngineerID
	a.ProjectID = in.ProjectID
	a.AllocationPercentage = in.AllocationPercentage
	a.StartDate = *start
	a.EndDate = *end
	a.Role = in.Role
	a.Status = in.Status
	a.Priority = in.Priority
	a.Description = in.Description
}

// AssignmentListInput represents filters for listing assignments
type AssignmentListInput struct {
	EngineerID *uint64
	ProjectID  *uint64
	Status     *models.AssignmentStatus
}

// AssignmentService keeps engineer capacity and project progress in step
// with the assignment lifecycle.
type AssignmentService struct {
	assignmentRepo          repository.AssignmentRepository
	releaseCapacityOnDelete bool
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(assignmentRepo repository.AssignmentRepository, releaseCapacityOnDelete bool) *AssignmentService {
	return &AssignmentService{
		assignmentRepo:          assignmentRepo,
		releaseCapacityOnDelete: releaseCapacityOnDelete,
	}
}

// CreateAssignment validates the payload, adds the allocation to the
// engineer's current capacity and stores the assignment, all or nothing.
func (s *AssignmentService) CreateAssignment(ctx context.Context, actor auth.Identity, input AssignmentInput) (*models.Assignment, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	input.normalize()
	if input.Status == "" {
		input.Status = models.AssignmentStatusActive
	}
	if err := validateStruct(input, assignmentMessages); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{CreatedBy: actor.ID}
	input.apply(assignment)

	if err := s.assignmentRepo.CreateWithAllocation(ctx, assignment); err != nil {
		switch {
		case errors.Is(err, repository.ErrEngineerMissing):
			return nil, ErrEngineerNotFound
		case errors.Is(err, repository.ErrProjectMissing):
			return nil, ErrProjectNotFound
		default:
			return nil, fmt.Errorf("failed to create assignment: %w", err)
		}
	}

	metrics.AssignmentsCreated.Inc()
	metrics.CapacityAllocated.Add(float64(assignment.AllocationPercentage))
	logging.Logger.WithFields(logrus.Fields{
		"assignment_id": assignment.ID,
		"engineer_id":   assignment.EngineerID,
		"project_id":    assignment.ProjectID,
		"delta":         assignment.AllocationPercentage,
	}).Info("assignment created, capacity allocated")

	return s.reload(ctx, assignment.ID)
}

// UpdateAssignment revalidates and stores the assignment. The first move of
// its status to completed adds the allocation to the project's progress.
func (s *AssignmentService) UpdateAssignment(ctx context.Context, actor auth.Identity, id uint64, input AssignmentInput) (*models.Assignment, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	existing, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	input.normalize()
	if input.Status == "" {
		input.Status = existing.Status
	}
	if err := validateStruct(input, assignmentMessages); err != nil {
		return nil, err
	}

	input.apply(existing)

	completed, err := s.assignmentRepo.UpdateWithCompletion(ctx, existing)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEngineerMissing):
			return nil, ErrEngineerNotFound
		case errors.Is(err, repository.ErrProjectMissing):
			return nil, ErrProjectNotFound
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrAssignmentNotFound
		default:
			return nil, fmt.Errorf("failed to update assignment: %w", err)
		}
	}

	if completed {
		metrics.AssignmentsCompleted.Inc()
		logging.Logger.WithFields(logrus.Fields{
			"assignment_id": existing.ID,
			"project_id":    existing.ProjectID,
			"delta":         existing.AllocationPercentage,
		}).Info("assignment completed, project progress advanced")
	}

	return s.reload(ctx, existing.ID)
}

// DeleteAssignment removes an assignment. Capacity is released only when the
// service was built with releaseCapacityOnDelete; progress is never reversed.
func (s *AssignmentService) DeleteAssignment(ctx context.Context, actor auth.Identity, id uint64) error {
	if err := requireManager(actor); err != nil {
		return err
	}

	deleted, err := s.assignmentRepo.Delete(ctx, id, s.releaseCapacityOnDelete)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	logging.Logger.WithFields(logrus.Fields{
		"assignment_id":     deleted.ID,
		"engineer_id":       deleted.EngineerID,
		"capacity_released": s.releaseCapacityOnDelete,
	}).Info("assignment deleted")
	return nil
}

// GetAssignment returns an assignment. Engineers only see their own.
func (s *AssignmentService) GetAssignment(ctx context.Context, actor auth.Identity, id uint64) (*models.Assignment, error) {
	if actor.IsZero() {
		return nil, ErrUnauthorized
	}

	assignment, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() && assignment.EngineerID != actor.ID {
		return nil, ErrAssignmentNotFound
	}
	return assignment, nil
}

// ListAssignments lists assignments. Engineers are always scoped to their own.
func (s *AssignmentService) ListAssignments(ctx context.Context, actor auth.Identity, input AssignmentListInput) ([]models.Assignment, error) {
	if actor.IsZero() {
		return nil, ErrUnauthorized
	}

	filter := repository.AssignmentFilter{
		EngineerID: input.EngineerID,
		ProjectID:  input.ProjectID,
	}
	if input.Status != nil {
		filter.Statuses = []models.AssignmentStatus{*input.Status}
	}
	if !actor.IsManager() {
		filter.EngineerID = &actor.ID
	}

	assignments, err := s.assignmentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *AssignmentService) reload(ctx context.Context, id uint64) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id, "Engineer", "Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	return assignment, nil
}

// requireManager gates mutating operations behind a resolved manager identity.
func requireManager(actor auth.Identity) error {
	if actor.IsZero() {
		return ErrUnauthorized
	}
	if !actor.IsManager() {
		return ErrForbidden
	}
	return nil
}
