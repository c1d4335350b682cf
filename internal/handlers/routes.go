package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/middleware"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
)

// Set bundles every HTTP handler of the API.
type Set struct {
	Auth        *AuthHandler
	Engineers   *EngineerHandler
	Projects    *ProjectHandler
	Assignments *AssignmentHandler
	Analytics   *AnalyticsHandler
}

// RegisterRoutes mounts the /api routes on r.
func RegisterRoutes(r gin.IRouter, h Set, tokens *auth.TokenManager) {
	requireAuth := middleware.RequireAuth(tokens)
	managerOnly := middleware.RequireRole(models.RoleManager)

	api := r.Group("/api")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", h.Auth.Logout)
			authGroup.GET("/me", requireAuth, h.Auth.GetCurrentUser)
			authGroup.PUT("/profile", requireAuth, h.Auth.UpdateProfile)
		}

		engineers := api.Group("/engineers")
		engineers.Use(requireAuth)
		{
			engineers.GET("", h.Engineers.ListEngineers)
			engineers.GET("/:id", h.Engineers.GetEngineer)
			engineers.GET("/:id/capacity", h.Engineers.GetCapacity)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", h.Projects.ListProjects)
			projects.GET("/:id", h.Projects.GetProject)
			projects.GET("/:id/suitable-engineers", managerOnly, h.Projects.SuitableEngineers)
			projects.POST("", managerOnly, h.Projects.CreateProject)
			projects.PUT("/:id", managerOnly, h.Projects.UpdateProject)
			projects.DELETE("/:id", managerOnly, h.Projects.DeleteProject)
		}

		assignments := api.Group("/assignments")
		assignments.Use(requireAuth)
		{
			assignments.GET("", h.Assignments.ListAssignments)
			assignments.GET("/me", h.Assignments.MyAssignments)
			assignments.GET("/:id", h.Assignments.GetAssignment)
			assignments.POST("", managerOnly, h.Assignments.CreateAssignment)
			assignments.PUT("/:id", managerOnly, h.Assignments.UpdateAssignment)
			assignments.DELETE("/:id", managerOnly, h.Assignments.DeleteAssignment)
		}

		analytics := api.Group("/analytics")
		analytics.Use(requireAuth, managerOnly)
		{
			analytics.GET("/utilization", h.Analytics.Utilization)
		}
	}
}
