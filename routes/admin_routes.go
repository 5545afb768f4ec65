package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coolairsites/pipeline-api/controllers"
	"github.com/coolairsites/pipeline-api/middleware"
)

// RegisterAdminRoutes registers administrative routes. Everything here
// requires an ADMIN token.
func RegisterAdminRoutes(router *gin.Engine) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/reset-test-pipeline", controllers.ResetTestPipeline)
	}
}
