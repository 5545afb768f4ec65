package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coolairsites/pipeline-api/controllers"
	"github.com/coolairsites/pipeline-api/middleware"
)

// RegisterAppointmentRoutes registers the appointment scheduler routes.
// Booking is open to the public site's scheduling widget; listing and
// status changes require a sales-team token.
func RegisterAppointmentRoutes(router *gin.Engine) {
	router.POST("/api/appointments", controllers.BookAppointment)

	appointments := router.Group("/api/appointments")
	appointments.Use(middleware.AuthRequired())
	{
		appointments.GET("", controllers.ListAppointments)
		appointments.PUT("/:id/status", controllers.UpdateAppointmentStatus)
	}
}
