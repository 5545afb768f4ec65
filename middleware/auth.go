package middleware

import (
	"net/http"
	"strings"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and stores its claims on the
// request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Logger.Error().Err(err).Msg("token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid token",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		if claims["id"] == nil || claims["role"] == nil || claims["username"] == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "token missing required claims",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// AdminRequired allows only ADMIN tokens. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.GetUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    utils.CodeUnauthorized,
			})
			return
		}

		if user.Role != string(models.UserRoleADMIN) {
			utils.Logger.Warn().
				Str("username", user.Username).
				Str("role", user.Role).
				Str("path", c.Request.URL.Path).
				Msg("non-admin attempted admin operation")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "admin role required",
				"code":    utils.CodeForbidden,
			})
			return
		}

		c.Next()
	}
}
