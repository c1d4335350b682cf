package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/repository"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// activeStatuses are the assignment states that still hold capacity.
var activeStatuses = []models.AssignmentStatus{
	models.AssignmentStatusActive,
	models.AssignmentStatusOnHold,
}

// EngineerService exposes the engineer directory and workload views.
type EngineerService struct {
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
}

// NewEngineerService creates a new EngineerService
func NewEngineerService(userRepo repository.UserRepository, assignmentRepo repository.AssignmentRepository) *EngineerService {
	return &EngineerService{
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
	}
}

// ListEngineersInput represents filters for the engineer directory
type ListEngineersInput struct {
	Skill         string
	Seniority     *models.Seniority
	Department    string
	AvailableOnly bool
}

// ListEngineers returns engineers matching the filters
func (s *EngineerService) ListEngineers(ctx context.Context, actor auth.Identity, input ListEngineersInput) ([]models.User, error) {
	if actor.IsZero() {
		return nil, ErrUnauthorized
	}

	engineers, err := s.userRepo.ListEngineers(ctx, repository.EngineerFilter{
		Seniority:     input.Seniority,
		Department:    strings.TrimSpace(input.Department),
		AvailableOnly: input.AvailableOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list engineers: %w", err)
	}

	skill := strings.ToLower(strings.TrimSpace(input.Skill))
	if skill == "" {
		return engineers, nil
	}
	return slice.FindAll(engineers, func(u models.User) bool {
		return slice.Contains(u.Skills, skill)
	}), nil
}

// GetEngineer returns one engineer
func (s *EngineerService) GetEngineer(ctx context.Context, actor auth.Identity, id uint64) (*models.User, error) {
	if actor.IsZero() {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEngineerNotFound
		}
		return nil, fmt.Errorf("failed to find engineer: %w", err)
	}
	if user.Role != models.RoleEngineer {
		return nil, ErrEngineerNotFound
	}
	return user, nil
}

// Capacity is an engineer's workload snapshot.
type Capacity struct {
	Engineer          models.User
	MaxCapacity       int
	CurrentCapacity   int
	AvailableCapacity int
	ActiveAssignments []models.Assignment
}

// GetCapacity returns the workload of an engineer. Engineers may only look
// at their own; managers may look at anyone.
func (s *EngineerService) GetCapacity(ctx context.Context, actor auth.Identity, id uint64) (*Capacity, error) {
	if actor.IsZero() {
		return nil, ErrUnauthorized
	}
	if !actor.IsManager() && actor.ID != id {
		return nil, ErrForbidden
	}

	var (
		engineer    *models.User
		assignments []models.Assignment
		eg          errgroup.Group
	)
	eg.Go(func() error {
		var err error
		engineer, err = s.GetEngineer(ctx, actor, id)
		return err
	})
	eg.Go(func() error {
		var err error
		assignments, err = s.assignmentRepo.List(ctx, repository.AssignmentFilter{
			EngineerID: &id,
			Statuses:   activeStatuses,
		})
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &Capacity{
		Engineer:          *engineer,
		MaxCapacity:       engineer.MaxCapacity,
		CurrentCapacity:   engineer.CurrentCapacity,
		AvailableCapacity: engineer.AvailableCapacity(),
		ActiveAssignments: assignments,
	}, nil
}
