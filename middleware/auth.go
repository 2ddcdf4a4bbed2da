package middleware

import (
	"net/http"
	"strings"

	"github.com/srinivasreddy0808/backend-quiz-management/models"
	"github.com/srinivasreddy0808/backend-quiz-management/services"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// Auth requires a valid "Authorization: Bearer <token>" header, resolves the
// token to a live user and stores it in the request context. Tokens whose
// user has been deleted are rejected.
func Auth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in, please log in to get access"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := authService.ResolveToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by Auth, or nil on unauthenticated
// routes.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
