package repository

import (
	"github.com/neemadeshwal/ERMS-sub000/internal/constants"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"gorm.io/gorm"
)

// incrementCapacity adds delta to an engineer's current capacity in one
// statement. It returns the number of rows matched.
func incrementCapacity(tx *gorm.DB, engineerID uint64, delta int) (int64, error) {
	res := tx.Model(&models.User{}).
		Where("id = ? AND role = ?", engineerID, models.RoleEngineer).
		UpdateColumn("current_capacity", gorm.Expr("current_capacity + ?", delta))
	return res.RowsAffected, res.Error
}

// releaseCapacityFor subtracts delta from an engineer's current capacity,
// never going below zero.
func releaseCapacityFor(tx *gorm.DB, engineerID uint64, delta int) (int64, error) {
	res := tx.Model(&models.User{}).
		Where("id = ?", engineerID).
		UpdateColumn("current_capacity",
			gorm.Expr("CASE WHEN current_capacity < ? THEN 0 ELSE current_capacity - ? END", delta, delta))
	return res.RowsAffected, res.Error
}

// incrementProgress adds delta to a project's progress, capped at 100.
func incrementProgress(tx *gorm.DB, projectID uint64, delta int) (int64, error) {
	res := tx.Model(&models.Project{}).
		Where("id = ?", projectID).
		UpdateColumn("progress",
			gorm.Expr("CASE WHEN progress + ? > ? THEN ? ELSE progress + ? END",
				delta, constants.MaxProgress, constants.MaxProgress, delta))
	return res.RowsAffected, res.Error
}
