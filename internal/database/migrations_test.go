package database

import (
	"testing"

	"github.com/neemadeshwal/ERMS-sub000/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestMigrateDatabase_IsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)

	require.NoError(t, MigrateDatabase(db))
	require.NoError(t, MigrateDatabase(db))

	require.True(t, db.Migrator().HasIndex("assignments", "idx_assignments_engineer_status"))
	require.True(t, db.Migrator().HasIndex("projects", "idx_projects_status_created"))
}
