package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/config"
	"github.com/neemadeshwal/ERMS-sub000/internal/constants"
	"github.com/neemadeshwal/ERMS-sub000/internal/database"
	"github.com/neemadeshwal/ERMS-sub000/internal/handlers"
	"github.com/neemadeshwal/ERMS-sub000/internal/logging"
	"github.com/neemadeshwal/ERMS-sub000/internal/metrics"
	"github.com/neemadeshwal/ERMS-sub000/internal/repository"
	"github.com/neemadeshwal/ERMS-sub000/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Init(cfg)
	log := logging.Logger

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(), metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type", constants.HeaderRequestID},
		ExposeHeaders:    []string{constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to create redis session store")
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	engineerService := services.NewEngineerService(userRepo, assignmentRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, cfg.ReleaseCapacityOnDelete)
	analyticsService := services.NewAnalyticsService(userRepo, assignmentRepo)

	r.GET("/health", handlers.NewHealthHandler(db).Health)
	r.GET("/metrics", metrics.Handler())

	handlers.RegisterRoutes(r, handlers.Set{
		Auth:        handlers.NewAuthHandler(authService),
		Engineers:   handlers.NewEngineerHandler(engineerService),
		Projects:    handlers.NewProjectHandler(projectService),
		Assignments: handlers.NewAssignmentHandler(assignmentService),
		Analytics:   handlers.NewAnalyticsHandler(analyticsService),
	}, tokens)

	// Start server
	log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
