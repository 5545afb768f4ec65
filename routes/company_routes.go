package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coolairsites/pipeline-api/controllers"
	"github.com/coolairsites/pipeline-api/middleware"
)

// RegisterCompanyRoutes registers company store routes.
func RegisterCompanyRoutes(router *gin.Engine) {
	companies := router.Group("/api/companies")
	companies.Use(middleware.AuthRequired())
	{
		companies.POST("", controllers.CreateCompany)
		companies.GET("", controllers.ListCompanies)
		companies.GET("/:id", controllers.GetCompany)
		companies.PUT("/:id", controllers.UpdateCompany)
	}
}
