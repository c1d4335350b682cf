package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrEngineerMissing is returned when the referenced engineer does not exist.
	ErrEngineerMissing = errors.New("assignment repository: engineer not found")
	// ErrProjectMissing is returned when the referenced project does not exist.
	ErrProjectMissing = errors.New("assignment repository: project not found")
	// ErrAllocateCapacity is returned when the capacity increment fails.
	ErrAllocateCapacity = errors.New("assignment repository: allocate capacity failed")
	// ErrCreateAssignment is returned when storing the assignment fails.
	ErrCreateAssignment = errors.New("assignment repository: create assignment failed")
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// CreateWithAllocation increments the engineer's capacity and stores the assignment in one transaction
func (r *GormAssignmentRepository) CreateWithAllocation(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		matched, err := incrementCapacity(tx, assignment.EngineerID, assignment.AllocationPercentage)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAllocateCapacity, err)
		}
		if matched == 0 {
			return ErrEngineerMissing
		}

		if err := requireProject(tx, assignment.ProjectID); err != nil {
			return err
		}

		if err := tx.Create(assignment).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateAssignment, err)
		}
		return nil
	})
}

func requireEngineer(tx *gorm.DB, id uint64) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ? AND role = ?", id, models.RoleEngineer).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrEngineerMissing
	}
	return nil
}

func requireProject(tx *gorm.DB, id uint64) error {
	var count int64
	if err := tx.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProjectMissing
	}
	return nil
}

// FindByID finds an assignment by ID with optional preloading
func (r *GormAssignmentRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Assignment, error) {
	var assignment models.Assignment
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// List retrieves assignments ordered by start date, newest first
func (r *GormAssignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error) {
	query := r.db.WithContext(ctx).Model(&models.Assignment{})

	if filter.EngineerID != nil {
		query = query.Where("engineer_id = ?", *filter.EngineerID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}

	var assignments []models.Assignment
	if err := query.
		Preload("Engineer").
		Preload("Project").
		Order("start_date DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// UpdateWithCompletion stores the assignment and applies the completion side effect
func (r *GormAssignmentRepository) UpdateWithCompletion(ctx context.Context, assignment *models.Assignment) (bool, error) {
	completed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored models.Assignment
		if err := tx.Select("id", "engineer_id", "project_id").First(&stored, assignment.ID).Error; err != nil {
			return err
		}
		if stored.EngineerID != assignment.EngineerID {
			if err := requireEngineer(tx, assignment.EngineerID); err != nil {
				return err
			}
		}
		if stored.ProjectID != assignment.ProjectID {
			if err := requireProject(tx, assignment.ProjectID); err != nil {
				return err
			}
		}

		res := tx.Model(&models.Assignment{}).
			Where("id = ?", assignment.ID).
			Updates(map[string]any{
				"engineer_id":           assignment.EngineerID,
				"project_id":            assignment.ProjectID,
				"allocation_percentage": assignment.AllocationPercentage,
				"start_date":            assignment.StartDate,
				"end_date":              assignment.EndDate,
				"role":                  assignment.Role,
				"priority":              assignment.Priority,
				"description":           assignment.Description,
			})
		if res.Error != nil {
			return res.Error
		}

		if assignment.Status != models.AssignmentStatusCompleted {
			return tx.Model(&models.Assignment{}).
				Where("id = ?", assignment.ID).
				Update("status", assignment.Status).Error
		}

		// Only the statement that flips the stored status counts as the
		// transition; a repeated "completed" matches no row.
		res = tx.Model(&models.Assignment{}).
			Where("id = ? AND status <> ?", assignment.ID, models.AssignmentStatusCompleted).
			Update("status", models.AssignmentStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		completed = true

		// A missing project leaves progress alone.
		_, err := incrementProgress(tx, assignment.ProjectID, assignment.AllocationPercentage)
		return err
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

// Delete soft deletes an assignment, optionally releasing its capacity
func (r *GormAssignmentRepository) Delete(ctx context.Context, id uint64, releaseCapacity bool) (*models.Assignment, error) {
	var assignment models.Assignment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Assignment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if !releaseCapacity {
			return nil
		}
		_, err := releaseCapacityFor(tx, assignment.EngineerID, assignment.AllocationPercentage)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
