package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/neemadeshwal/ERMS-sub000/internal/dto"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectResponse struct {
	Success bool           `json:"success"`
	Project dto.ProjectDTO `json:"project"`
}

func TestProjectHandler_CRUD(t *testing.T) {
	env := setupTestEnv(t)

	manager := testutil.CreateManager(t, env.db, "lead@example.com")
	token := env.tokenFor(t, manager)

	w := env.do(t, http.MethodPost, "/api/projects", token, map[string]any{
		"name":           "Atlas",
		"description":    "Internal billing platform",
		"startDate":      "2024-01-15",
		"requiredSkills": []string{"Go"},
		"teamSize":       3,
		"status":         "active",
		"progress":       90,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created projectResponse
	decode(t, w, &created)
	assert.Equal(t, 0, created.Project.Progress)
	assert.Equal(t, manager.ID, created.Project.ManagerID)
	require.NotNil(t, created.Project.Manager)

	path := fmt.Sprintf("/api/projects/%d", created.Project.ID)
	w = env.do(t, http.MethodPut, path, token, map[string]any{
		"name":        "Atlas v2",
		"description": "Internal billing platform",
		"startDate":   "2024-01-15",
		"teamSize":    5,
		"status":      "on-hold",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated projectResponse
	decode(t, w, &updated)
	assert.Equal(t, "Atlas v2", updated.Project.Name)
	assert.Equal(t, models.ProjectStatusOnHold, updated.Project.Status)

	w = env.do(t, http.MethodGet, "/api/projects?status=on-hold", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.ProjectListResponse
	decode(t, w, &list)
	assert.Equal(t, int64(1), list.TotalCount)
	assert.Equal(t, 1, list.TotalPages)

	w = env.do(t, http.MethodGet, "/api/projects?status=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_ManagerOnlyMutations(t *testing.T) {
	env := setupTestEnv(t)

	manager := testutil.CreateManager(t, env.db, "lead@example.com")
	engineer := testutil.CreateEngineer(t, env.db, "dev@example.com", 100, 0)
	project := testutil.CreateProject(t, env.db, "Atlas", manager.ID, 0)
	token := env.tokenFor(t, engineer)

	w := env.do(t, http.MethodPost, "/api/projects", token, map[string]any{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjectHandler_SuitableEngineers(t *testing.T) {
	env := setupTestEnv(t)

	manager := testutil.CreateManager(t, env.db, "lead@example.com")
	engineer := testutil.CreateEngineer(t, env.db, "dev@example.com", 100, 30)
	project := testutil.CreateProject(t, env.db, "Atlas", manager.ID, 0)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%d/suitable-engineers", project.ID), env.tokenFor(t, manager), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response struct {
		Engineers []dto.SuitableEngineerDTO `json:"engineers"`
	}
	decode(t, w, &response)
	require.Len(t, response.Engineers, 1)
	assert.Equal(t, engineer.ID, response.Engineers[0].Engineer.ID)
	assert.Equal(t, []string{"go"}, response.Engineers[0].MatchingSkills)
	assert.Equal(t, 70, response.Engineers[0].AvailableCapacity)
}
