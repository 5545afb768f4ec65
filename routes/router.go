package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coolairsites/pipeline-api/controllers"
)

// RegisterRoutes wires up every route group.
func RegisterRoutes(router *gin.Engine) {
	RegisterAuthRoutes(router)
	RegisterCompanyRoutes(router)
	RegisterLeadRoutes(router)
	RegisterTagRoutes(router)
	RegisterAppointmentRoutes(router)
	RegisterDashboardRoutes(router)
	RegisterAdminRoutes(router)

	// Health check
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Database status check
	router.GET("/api/db-status", controllers.GetDBStatus)
}
