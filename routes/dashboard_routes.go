package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coolairsites/pipeline-api/controllers"
	"github.com/coolairsites/pipeline-api/middleware"
)

// RegisterDashboardRoutes registers the pipeline summary route.
func RegisterDashboardRoutes(router *gin.Engine) {
	dashboard := router.Group("/api/pipeline")
	dashboard.Use(middleware.AuthRequired())
	{
		dashboard.GET("/summary", controllers.GetPipelineSummary)
	}
}
