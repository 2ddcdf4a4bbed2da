package main

import (
	"github.com/srinivasreddy0808/backend-quiz-management/config"
	"github.com/srinivasreddy0808/backend-quiz-management/handlers"
	"github.com/srinivasreddy0808/backend-quiz-management/middleware"
	"github.com/srinivasreddy0808/backend-quiz-management/models"
	"github.com/srinivasreddy0808/backend-quiz-management/pkg/logger"
	"github.com/srinivasreddy0808/backend-quiz-management/routes"
	"github.com/srinivasreddy0808/backend-quiz-management/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Server.Mode)
	defer logger.Log.Sync()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database models
	if err := db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
	); err != nil {
		logger.Log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	quizService := services.NewQuizService(db)
	analyticsService := services.NewAnalyticsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	userHandler := handlers.NewUserHandler(analyticsService)

	// Setup Gin router
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, authHandler, quizHandler, userHandler, authService)

	// Start server
	logger.Log.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Log.Fatal("failed to start server", zap.Error(err))
	}
}
