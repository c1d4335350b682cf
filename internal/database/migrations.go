package database

import (
	"fmt"

	"github.com/neemadeshwal/ERMS-sub000/internal/logging"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes the workload queries rely on
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Workload and capacity lookups
		{"assignments", "idx_assignments_engineer_status", "engineer_id, status"},
		{"assignments", "idx_assignments_project_status", "project_id, status"},

		// Engineer directory filters
		{"users", "idx_users_role_seniority", "role, seniority"},

		// Project listing
		{"projects", "idx_projects_status_created", "status, created_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			logging.Logger.WithField("index", idx.name).Debug("index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logging.Logger.WithField("index", idx.name).Infof("created index on %s(%s)", idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs the migrations that AutoMigrate does not cover
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
