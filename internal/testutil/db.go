// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory sqlite database closed at test cleanup.
// The pool is pinned to one connection because every sqlite :memory:
// connection is a separate database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Assignment{},
	))

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// CreateEngineer stores an engineer with the given capacity figures.
func CreateEngineer(t *testing.T, db *gorm.DB, email string, maxCapacity, currentCapacity int) *models.User {
	t.Helper()
	user := &models.User{
		Email:           email,
		Name:            email,
		PasswordHash:    "hashed",
		Role:            models.RoleEngineer,
		Skills:          []string{"go", "react"},
		Seniority:       models.SeniorityMid,
		EmploymentType:  models.EmploymentFullTime,
		MaxCapacity:     maxCapacity,
		CurrentCapacity: currentCapacity,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateManager stores a manager account.
func CreateManager(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		Name:         email,
		PasswordHash: "hashed",
		Role:         models.RoleManager,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProject stores an active project with the given progress.
func CreateProject(t *testing.T, db *gorm.DB, name string, managerID uint64, progress int) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:           name,
		Description:    "Project " + name,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RequiredSkills: []string{"go"},
		TeamSize:       3,
		Status:         models.ProjectStatusActive,
		Progress:       progress,
		ManagerID:      managerID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}
