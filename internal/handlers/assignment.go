package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/dto"
	apierrors "github.com/neemadeshwal/ERMS-sub000/internal/errors"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// assignmentRequest accepts engineerId as one id or a list, ids as numbers or
// numeric strings, and the allocation under either allocationPercentage or
// allocation.
type assignmentRequest struct {
	EngineerID           models.EngineerRef        `json:"engineerId"`
	ProjectID            models.ProjectRef         `json:"projectId"`
	AllocationPercentage *int                      `json:"allocationPercentage"`
	Allocation           *int                      `json:"allocation"`
	Role                 string                    `json:"role"`
	StartDate            string                    `json:"startDate"`
	EndDate              string                    `json:"endDate"`
	Status               models.AssignmentStatus   `json:"status"`
	Priority             models.AssignmentPriority `json:"priority"`
	Description          string                    `json:"description"`
}

func (r assignmentRequest) toInput() services.AssignmentInput {
	input := services.AssignmentInput{
		EngineerID:  r.EngineerID.Primary(),
		ProjectID:   uint64(r.ProjectID),
		Role:        r.Role,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Status:      r.Status,
		Priority:    r.Priority,
		Description: r.Description,
	}
	switch {
	case r.AllocationPercentage != nil:
		input.AllocationPercentage = *r.AllocationPercentage
	case r.Allocation != nil:
		input.AllocationPercentage = *r.Allocation
	}
	return input
}

// bindAssignment decodes the body. Malformed identifiers are reported as
// invalid ID format.
func bindAssignment(c *gin.Context) (services.AssignmentInput, bool) {
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, models.ErrInvalidIDRef) {
			apierrors.InvalidID(c)
			return services.AssignmentInput{}, false
		}
		apierrors.BadRequest(c, "Invalid request body")
		return services.AssignmentInput{}, false
	}
	return req.toInput(), true
}

// ListAssignments lists assignments. Managers may filter by engineerId,
// projectId and status; engineers always get their own.
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	engineerID, ok := parseOptionalID(c, "engineerId")
	if !ok {
		return
	}
	projectID, ok := parseOptionalID(c, "projectId")
	if !ok {
		return
	}
	input := services.AssignmentListInput{
		EngineerID: engineerID,
		ProjectID:  projectID,
	}
	if s := c.Query("status"); s != "" {
		status := models.AssignmentStatus(s)
		input.Status = &status
	}

	h.respondList(c, id, input)
}

// MyAssignments lists the caller's own assignments
func (h *AssignmentHandler) MyAssignments(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	h.respondList(c, id, services.AssignmentListInput{EngineerID: &id.ID})
}

// GetAssignment returns a single assignment
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetAssignment(c.Request.Context(), id, assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assignment": dto.ToAssignmentDTO(*assignment),
	})
}

// CreateAssignment creates an assignment and allocates the engineer's capacity
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	input, ok := bindAssignment(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"assignment": dto.ToAssignmentDTO(*assignment),
	})
}

// UpdateAssignment updates an assignment; completing it advances project progress
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	input, ok := bindAssignment(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.UpdateAssignment(c.Request.Context(), id, assignmentID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assignment": dto.ToAssignmentDTO(*assignment),
	})
}

// DeleteAssignment deletes an assignment
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), id, assignmentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Assignment deleted successfully",
	})
}

func (h *AssignmentHandler) respondList(c *gin.Context, id auth.Identity, input services.AssignmentListInput) {
	assignments, err := h.assignmentService.ListAssignments(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": dto.ToAssignmentDTOs(assignments),
	})
}
