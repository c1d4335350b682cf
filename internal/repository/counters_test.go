package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestIncrementCapacity_SingleAtomicUpdate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `users` SET `current_capacity`=current_capacity + ? WHERE (id = ? AND role = ?) AND `users`.`deleted_at` IS NULL",
	)).
		WithArgs(60, uint64(7), "engineer").
		WillReturnResult(sqlmock.NewResult(0, 1))

	matched, err := incrementCapacity(db, 7, 60)
	require.NoError(t, err)
	require.Equal(t, int64(1), matched)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementProgress_ClampsInSQL(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `projects` SET `progress`=CASE WHEN progress + ? > ? THEN ? ELSE progress + ? END WHERE id = ? AND `projects`.`deleted_at` IS NULL",
	)).
		WithArgs(60, 100, 100, 60, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	matched, err := incrementProgress(db, 3, 60)
	require.NoError(t, err)
	require.Equal(t, int64(1), matched)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseCapacity_FloorsAtZero(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `users` SET `current_capacity`=CASE WHEN current_capacity < ? THEN 0 ELSE current_capacity - ? END WHERE id = ? AND `users`.`deleted_at` IS NULL",
	)).
		WithArgs(40, 40, uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	matched, err := releaseCapacityFor(db, 9, 40)
	require.NoError(t, err)
	require.Zero(t, matched)
	require.NoError(t, mock.ExpectationsWereMet())
}
