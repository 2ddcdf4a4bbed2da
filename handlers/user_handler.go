package handlers

import (
	"net/http"

	"github.com/srinivasreddy0808/backend-quiz-management/middleware"
	"github.com/srinivasreddy0808/backend-quiz-management/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	analyticsService *services.AnalyticsService
}

func NewUserHandler(analyticsService *services.AnalyticsService) *UserHandler {
	return &UserHandler{analyticsService: analyticsService}
}

func (h *UserHandler) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	data, err := h.analyticsService.Dashboard(user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *UserHandler) AnalyticsTable(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	populated, err := h.analyticsService.AnalyticsTable(user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": populated})
}
