package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coolairsites/pipeline-api/controllers"
	"github.com/coolairsites/pipeline-api/middleware"
)

// RegisterAuthRoutes registers authentication routes.
func RegisterAuthRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.GET("/validate", middleware.AuthRequired(), controllers.ValidateToken)
	}
}
