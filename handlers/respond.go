package handlers

import (
	"errors"
	"net/http"

	"github.com/srinivasreddy0808/backend-quiz-management/pkg/logger"
	"github.com/srinivasreddy0808/backend-quiz-management/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// serviceError maps service sentinel errors to their HTTP status. Anything
// unrecognized is logged and reported as a 500 without leaking detail.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrQuestionCountMismatch),
		errors.Is(err, services.ErrQuestionLocked),
		errors.Is(err, services.ErrOptionOutOfRange),
		errors.Is(err, services.ErrInvalidCreatedAt):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.Log.Error("internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
