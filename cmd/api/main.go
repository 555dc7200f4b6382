package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/GrupoUS/aegiswallet-sub008/internal/config"
	"github.com/GrupoUS/aegiswallet-sub008/internal/database"
	"github.com/GrupoUS/aegiswallet-sub008/internal/handlers"
	"github.com/GrupoUS/aegiswallet-sub008/internal/logger"
	"github.com/GrupoUS/aegiswallet-sub008/internal/middleware"
	"github.com/GrupoUS/aegiswallet-sub008/internal/scheduler"
	"github.com/GrupoUS/aegiswallet-sub008/internal/services"
	"github.com/GrupoUS/aegiswallet-sub008/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	recurringEventService := services.NewRecurringEventService(db)
	generationService := services.NewGenerationService(db, auditService)
	generatedEventService := services.NewGeneratedEventService(db)

	// Initialize handlers
	recurringEventHandler := handlers.NewRecurringEventHandler(recurringEventService, generationService, auditService)
	calendarHandler := handlers.NewCalendarHandler(generatedEventService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group, all routes require an access token from the auth provider
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())

	// Recurring event routes
	events := v1.Group("/recurring-events")
	events.POST("", recurringEventHandler.CreateRecurringEvent)
	events.GET("", recurringEventHandler.GetRecurringEvents)
	events.GET("/templates", recurringEventHandler.GetTemplates)
	events.POST("/from-template", recurringEventHandler.CreateFromTemplate)
	events.GET("/:id", recurringEventHandler.GetRecurringEvent)
	events.PUT("/:id", recurringEventHandler.UpdateRecurringEvent)
	events.DELETE("/:id", recurringEventHandler.DeleteRecurringEvent)
	events.POST("/:id/deactivate", recurringEventHandler.DeactivateRecurringEvent)
	events.POST("/:id/generate", recurringEventHandler.GenerateEvents)

	// Calendar routes
	calendar := v1.Group("/calendar")
	calendar.GET("", calendarHandler.GetCalendar)
	calendar.GET("/feed.ics", calendarHandler.GetFeed)
	calendar.DELETE("/events/:id", calendarHandler.DeleteGeneratedEvent)

	// Nightly horizon generation
	sched := scheduler.New(generationService, appConfig.GenerationCron, appConfig.HorizonDays)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start generation scheduler: %w", err)
	}
	defer sched.Stop()

	log.Infof("Starting AegisWallet backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
