package repository

import (
	"context"

	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates name, skills, seniority and department
func (r *GormUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).
		Model(user).
		Select("name", "skills", "seniority", "department").
		Updates(user).Error
}

// ListEngineers lists engineers ordered by name
func (r *GormUserRepository) ListEngineers(ctx context.Context, filter EngineerFilter) ([]models.User, error) {
	query := r.db.WithContext(ctx).Where("role = ?", models.RoleEngineer)

	if filter.Seniority != nil {
		query = query.Where("seniority = ?", *filter.Seniority)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.AvailableOnly {
		query = query.Where("current_capacity < max_capacity")
	}

	var engineers []models.User
	if err := query.Order("name ASC").Find(&engineers).Error; err != nil {
		return nil, err
	}
	return engineers, nil
}
