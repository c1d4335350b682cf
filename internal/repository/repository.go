package repository

//go:generate mockgen -source=./repository.go -destination=./mocks/repository.mock.go -package=repomocks

import (
	"context"

	"github.com/neemadeshwal/ERMS-sub000/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateProfile updates the self-service profile fields of a user.
	// Capacity figures are never written through this method.
	UpdateProfile(ctx context.Context, user *models.User) error

	// ListEngineers lists engineers matching the filter
	ListEngineers(ctx context.Context, filter EngineerFilter) ([]models.User, error)
}

// EngineerFilter holds filtering options for listing engineers
type EngineerFilter struct {
	Seniority     *models.Seniority
	Department    string
	AvailableOnly bool
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects with filtering and pagination
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, int64, error)

	// Update updates the editable fields of a project. Progress is left untouched.
	Update(ctx context.Context, project *models.Project) error

	// Delete soft deletes a project and its assignments
	Delete(ctx context.Context, id uint64) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Status    *models.ProjectStatus
	ManagerID *uint64
	Page      int
	PageSize  int
}

// AssignmentRepository defines the interface for assignment data access.
// Every method that touches engineer capacity or project progress does so
// with a single field-level UPDATE inside the same transaction as the
// assignment write.
type AssignmentRepository interface {
	// CreateWithAllocation adds the allocation to the engineer's current
	// capacity and stores the assignment atomically.
	CreateWithAllocation(ctx context.Context, assignment *models.Assignment) error

	// FindByID finds an assignment by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Assignment, error)

	// List retrieves assignments matching the filter
	List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error)

	// UpdateWithCompletion stores the assignment. When the stored status moves
	// to completed, the project progress grows by the allocation, capped at 100.
	// The returned flag reports whether that transition happened.
	UpdateWithCompletion(ctx context.Context, assignment *models.Assignment) (bool, error)

	// Delete soft deletes an assignment and returns it. With releaseCapacity the
	// allocation is taken off the engineer's current capacity, floored at 0.
	Delete(ctx context.Context, id uint64, releaseCapacity bool) (*models.Assignment, error)
}

// AssignmentFilter holds filtering options for listing assignments
type AssignmentFilter struct {
	EngineerID *uint64
	ProjectID  *uint64
	Statuses   []models.AssignmentStatus
}
