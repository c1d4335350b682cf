package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/dto"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
)

type EngineerHandler struct {
	engineerService *services.EngineerService
}

func NewEngineerHandler(engineerService *services.EngineerService) *EngineerHandler {
	return &EngineerHandler{
		engineerService: engineerService,
	}
}

// ListEngineers returns engineers, filtered by skill, seniority, department
// and available=true
func (h *EngineerHandler) ListEngineers(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	input := services.ListEngineersInput{
		Skill:         c.Query("skill"),
		Department:    c.Query("department"),
		AvailableOnly: c.Query("available") == "true",
	}
	if s := c.Query("seniority"); s != "" {
		seniority := models.Seniority(s)
		input.Seniority = &seniority
	}

	engineers, err := h.engineerService.ListEngineers(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	users := make([]dto.UserDTO, 0, len(engineers))
	for _, e := range engineers {
		users = append(users, dto.ToUserDTO(e))
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"engineers": users,
	})
}

// GetEngineer returns a single engineer
func (h *EngineerHandler) GetEngineer(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	engineerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	engineer, err := h.engineerService.GetEngineer(c.Request.Context(), id, engineerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"engineer": dto.ToUserDTO(*engineer),
	})
}

// GetCapacity returns an engineer's workload
func (h *EngineerHandler) GetCapacity(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	engineerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	capacity, err := h.engineerService.GetCapacity(c.Request.Context(), id, engineerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"capacity": dto.ToCapacityDTO(*capacity),
	})
}
