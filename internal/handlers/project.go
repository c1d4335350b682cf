package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/dto"
	apierrors "github.com/neemadeshwal/ERMS-sub000/internal/errors"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
	"github.com/neemadeshwal/ERMS-sub000/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns projects, optionally filtered by status and mine=true
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListProjectsInput{
		Mine:     c.Query("mine") == "true",
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if s := c.Query("status"); s != "" {
		status := models.ProjectStatus(s)
		if !status.IsValid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}

	projects, total, err := h.projectService.ListProjects(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Success:    true,
		Projects:   dto.ToProjectDTOs(projects),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
		TotalPages: totalPages,
	})
}

// GetProject returns a project with its assignments
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), id, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": dto.ToProjectDTO(*project),
	})
}

// CreateProject creates a project managed by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req services.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"project": dto.ToProjectDTO(*project),
	})
}

// UpdateProject updates a project's editable fields
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), id, projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": dto.ToProjectDTO(*project),
	})
}

// DeleteProject deletes a project and its assignments
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), id, projectID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project deleted successfully",
	})
}

// SuitableEngineers ranks engineers for a project by matching skills
func (h *ProjectHandler) SuitableEngineers(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	ranked, err := h.projectService.FindSuitableEngineers(c.Request.Context(), id, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"engineers": dto.ToSuitableEngineerDTOs(ranked),
	})
}
