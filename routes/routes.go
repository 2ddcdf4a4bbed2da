package routes

import (
	"net/http"

	"github.com/srinivasreddy0808/backend-quiz-management/handlers"
	"github.com/srinivasreddy0808/backend-quiz-management/middleware"
	"github.com/srinivasreddy0808/backend-quiz-management/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	userHandler *handlers.UserHandler,
	authService *services.AuthService,
) {
	protect := middleware.Auth(authService)

	// Auth and per-user analytics
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.GET("/dashboard", protect, userHandler.Dashboard)
	router.GET("/analytics-table", protect, userHandler.AnalyticsTable)

	// Quiz lifecycle (owner only) and public taker surface
	quizzes := router.Group("/quizzes")
	{
		quizzes.POST("/create-quiz", protect, quizHandler.CreateQuiz)
		quizzes.PUT("/update-quiz/:id", protect, quizHandler.UpdateQuiz)
		quizzes.DELETE("/delete-quiz/:id", protect, quizHandler.DeleteQuiz)
		quizzes.GET("/quiz-analytics/:quizId", protect, quizHandler.GetQuizAnalytics)

		quizzes.GET("/:quizId", quizHandler.GetQuiz)
		quizzes.GET("/:quizId/questions/:questionId", quizHandler.GetQuestion)
		quizzes.POST("/:quizId/questions/:questionId", quizHandler.SubmitAnswer)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
