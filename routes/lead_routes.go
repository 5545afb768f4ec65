package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coolairsites/pipeline-api/controllers"
	"github.com/coolairsites/pipeline-api/middleware"
)

// RegisterLeadRoutes registers the lead store, stage transition, note,
// activity and per-lead tag routes.
func RegisterLeadRoutes(router *gin.Engine) {
	leads := router.Group("/api/leads")
	leads.Use(middleware.AuthRequired())
	{
		leads.POST("", controllers.CreateLead)
		leads.GET("", controllers.ListLeads)
		leads.GET("/:id", controllers.GetLead)
		leads.POST("/:id/transition", controllers.TransitionLeadStage)
		leads.PUT("/:id/follow-up", controllers.UpdateLeadFollowUp)

		leads.GET("/:id/activity", controllers.GetLeadActivity)
		leads.POST("/:id/activity", controllers.RecordLeadActivity)

		leads.POST("/:id/notes", controllers.AddLeadNote)
		leads.GET("/:id/notes", controllers.GetLeadNotes)

		leads.POST("/:id/tags", controllers.ApplyLeadTag)
		leads.GET("/:id/tags", controllers.GetLeadTags)
	}
}
