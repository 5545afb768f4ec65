package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coolairsites/pipeline-api/controllers"
	"github.com/coolairsites/pipeline-api/middleware"
)

// RegisterTagRoutes registers the tag catalog routes.
func RegisterTagRoutes(router *gin.Engine) {
	tags := router.Group("/api/tags")
	tags.Use(middleware.AuthRequired())
	{
		tags.GET("/definitions", controllers.ListTagDefinitions)
	}
}
