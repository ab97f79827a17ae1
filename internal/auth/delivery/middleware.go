package delivery

import (
	"net/http"
	"strings"

	"mailboard/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the owner identity from the bearer token. A
// request without a valid identity gets 401 and causes no side effects.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		ownerID, err := authUsecase.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("ownerID", ownerID)
		c.Next()
	}
}
