package services

import (
	"context"
	"errors"
	"testing"

	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/repository"
	repomocks "github.com/neemadeshwal/ERMS-sub000/internal/repository/mocks"
	"github.com/neemadeshwal/ERMS-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type engineerTestEnv struct {
	db       *gorm.DB
	svc      *EngineerService
	manager  *models.User
	engineer *models.User
}

func setupEngineerTestEnv(t *testing.T) engineerTestEnv {
	t.Helper()

	db := testutil.OpenDB(t)
	svc := NewEngineerService(repository.NewUserRepository(db), repository.NewAssignmentRepository(db))

	return engineerTestEnv{
		db:       db,
		svc:      svc,
		manager:  testutil.CreateManager(t, db, "lead@example.com"),
		engineer: testutil.CreateEngineer(t, db, "dev@example.com", 100, 0),
	}
}

func TestEngineerService_ListEngineers(t *testing.T) {
	env := setupEngineerTestEnv(t)
	ctx := context.Background()
	actor := auth.IdentityOf(*env.manager)

	busy := testutil.CreateEngineer(t, env.db, "busy@example.com", 50, 50)
	busy.Skills = []string{"python"}
	require.NoError(t, env.db.Save(busy).Error)

	all, err := env.svc.ListEngineers(ctx, actor, ListEngineersInput{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := env.svc.ListEngineers(ctx, actor, ListEngineersInput{AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, env.engineer.ID, available[0].ID)

	pythonistas, err := env.svc.ListEngineers(ctx, actor, ListEngineersInput{Skill: " Python "})
	require.NoError(t, err)
	require.Len(t, pythonistas, 1)
	assert.Equal(t, busy.ID, pythonistas[0].ID)

	senior := models.SenioritySenior
	none, err := env.svc.ListEngineers(ctx, actor, ListEngineersInput{Seniority: &senior})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = env.svc.ListEngineers(ctx, auth.Identity{}, ListEngineersInput{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestEngineerService_GetEngineer(t *testing.T) {
	env := setupEngineerTestEnv(t)
	ctx := context.Background()
	actor := auth.IdentityOf(*env.engineer)

	found, err := env.svc.GetEngineer(ctx, actor, env.engineer.ID)
	require.NoError(t, err)
	assert.Equal(t, env.engineer.Email, found.Email)

	_, err = env.svc.GetEngineer(ctx, actor, env.manager.ID)
	assert.ErrorIs(t, err, ErrEngineerNotFound)

	_, err = env.svc.GetEngineer(ctx, actor, 9999)
	assert.ErrorIs(t, err, ErrEngineerNotFound)
}

func TestEngineerService_GetCapacity(t *testing.T) {
	env := setupEngineerTestEnv(t)
	ctx := context.Background()
	manager := auth.IdentityOf(*env.manager)

	assignments := NewAssignmentService(repository.NewAssignmentRepository(env.db), false)
	project := testutil.CreateProject(t, env.db, "Atlas", env.manager.ID, 0)
	input := AssignmentInput{
		EngineerID:           env.engineer.ID,
		ProjectID:            project.ID,
		AllocationPercentage: 30,
		Role:                 "Backend",
		StartDate:            "2024-02-01",
		EndDate:              "2024-03-01",
		Priority:             models.PriorityMedium,
		Description:          "Payments work",
	}
	active, err := assignments.CreateAssignment(ctx, manager, input)
	require.NoError(t, err)
	done, err := assignments.CreateAssignment(ctx, manager, input)
	require.NoError(t, err)
	input.Status = models.AssignmentStatusCompleted
	_, err = assignments.UpdateAssignment(ctx, manager, done.ID, input)
	require.NoError(t, err)

	capacity, err := env.svc.GetCapacity(ctx, auth.IdentityOf(*env.engineer), env.engineer.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, capacity.MaxCapacity)
	assert.Equal(t, 60, capacity.CurrentCapacity)
	assert.Equal(t, 40, capacity.AvailableCapacity)
	require.Len(t, capacity.ActiveAssignments, 1)
	assert.Equal(t, active.ID, capacity.ActiveAssignments[0].ID)

	other := testutil.CreateEngineer(t, env.db, "other@example.com", 100, 0)
	_, err = env.svc.GetCapacity(ctx, auth.IdentityOf(*other), env.engineer.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.svc.GetCapacity(ctx, manager, 9999)
	assert.ErrorIs(t, err, ErrEngineerNotFound)
}

func TestEngineerService_ListEngineersRepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUserRepository(ctrl)
	assignments := repomocks.NewMockAssignmentRepository(ctrl)

	dbErr := errors.New("too many connections")
	users.EXPECT().ListEngineers(gomock.Any(), repository.EngineerFilter{Department: "platform"}).Return(nil, dbErr)

	svc := NewEngineerService(users, assignments)
	_, err := svc.ListEngineers(context.Background(), auth.Identity{ID: 1, Role: models.RoleManager}, ListEngineersInput{Department: " platform "})
	assert.ErrorIs(t, err, dbErr)
}
