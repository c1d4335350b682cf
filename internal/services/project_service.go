package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/repository"
	"github.com/neemadeshwal/ERMS-sub000/internal/utils"
	"gorm.io/gorm"
)

// ProjectInput is the payload of project create and update requests.
type ProjectInput struct {
	Name           string               `json:"name" validate:"required"`
	Description    string               `json:"description" validate:"min=5"`
	StartDate      string               `json:"startDate" validate:"required,date"`
	EndDate        string               `json:"endDate" validate:"omitempty,date"`
	RequiredSkills []string             `json:"requiredSkills"`
	TeamSize       int                  `json:"teamSize" validate:"min=1"`
	Status         models.ProjectStatus `json:"status" validate:"oneof=planning active on-hold completed cancelled"`
}

var projectMessages = map[string]string{
	"name.required":      "Project name is required",
	"description.min":    "Description must be at least 5 characters",
	"startDate.required": "Start date is required",
	"startDate.date":     "Start date must be a valid date",
	"endDate.date":       "End date must be a valid date",
	"teamSize.min":       "Team size must be at least 1",
	"status.oneof":       "Status must be one of planning, active, on-hold, completed, cancelled",
}

func (in *ProjectInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Status == "" {
		in.Status = models.ProjectStatusPlanning
	}
	if in.TeamSize == 0 {
		in.TeamSize = 1
	}
}

func (in ProjectInput) apply(p *models.Project) {
	start, _ := utils.ParseDate(in.StartDate)
	end, _ := utils.ParseDate(in.EndDate)

	p.Name = in.Name
	p.Description = in.Description
	p.StartDate = *start
	p.EndDate = end
	p.RequiredSkills = normalizeSkills(in.RequiredSkills)
	p.TeamSize = in.TeamSize
	p.Status = in.Status
}

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// ListProjectsInput represents filters for listing projects
type ListProjectsInput struct {
	Status   *models.ProjectStatus
	Mine     bool
	Page     int
	PageSize int
}

// CreateProject creates a project managed by the actor. Progress starts at 0.
func (s *ProjectService) CreateProject(ctx context.Context, actor auth.Identity, input ProjectInput) (*models.Project, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	input.normalize()
	if err := validateStruct(input, projectMessages); err != nil {
		return nil, err
	}

	project := &models.Project{ManagerID: actor.ID}
	input.apply(project)

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return s.GetProject(ctx, actor, project.ID)
}

// GetProject returns a project with its manager and assignments
func (s *ProjectService) GetProject(ctx context.Context, actor auth.Identity, id uint64) (*models.Project, error) {
	if actor.IsZero() {
		return nil, ErrUnauthorized
	}

	project, err := s.projectRepo.FindByID(ctx, id, "Manager", "Assignments", "Assignments.Engineer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects lists projects, optionally only those managed by the actor
func (s *ProjectService) ListProjects(ctx context.Context, actor auth.Identity, input ListProjectsInput) ([]models.Project, int64, error) {
	if actor.IsZero() {
		return nil, 0, ErrUnauthorized
	}

	filter := repository.ProjectFilter{
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if input.Mine && actor.IsManager() {
		filter.ManagerID = &actor.ID
	}

	projects, total, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// UpdateProject updates the editable fields. Progress only moves through
// assignment completion and is not writable here.
func (s *ProjectService) UpdateProject(ctx context.Context, actor auth.Identity, id uint64, input ProjectInput) (*models.Project, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	input.normalize()
	if err := validateStruct(input, projectMessages); err != nil {
		return nil, err
	}
	input.apply(project)

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.GetProject(ctx, actor, project.ID)
}

// DeleteProject removes a project and its assignments
func (s *ProjectService) DeleteProject(ctx context.Context, actor auth.Identity, id uint64) error {
	if err := requireManager(actor); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// SuitableEngineer is an engineer ranked against a project's skill needs.
type SuitableEngineer struct {
	Engineer          models.User
	MatchingSkills    []string
	AvailableCapacity int
}

// FindSuitableEngineers ranks engineers sharing at least one required skill,
// most matching skills first, then most available capacity.
func (s *ProjectService) FindSuitableEngineers(ctx context.Context, actor auth.Identity, id uint64) ([]SuitableEngineer, error) {
	project, err := s.GetProject(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	engineers, err := s.userRepo.ListEngineers(ctx, repository.EngineerFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list engineers: %w", err)
	}

	required := normalizeSkills(project.RequiredSkills)
	result := make([]SuitableEngineer, 0, len(engineers))
	for _, engineer := range engineers {
		matching := slice.FindAll(required, func(skill string) bool {
			return slice.Contains(engineer.Skills, skill)
		})
		if len(matching) == 0 {
			continue
		}
		result = append(result, SuitableEngineer{
			Engineer:          engineer,
			MatchingSkills:    matching,
			AvailableCapacity: engineer.AvailableCapacity(),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if len(result[i].MatchingSkills) != len(result[j].MatchingSkills) {
			return len(result[i].MatchingSkills) > len(result[j].MatchingSkills)
		}
		return result[i].AvailableCapacity > result[j].AvailableCapacity
	})
	return result, nil
}
