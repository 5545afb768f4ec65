package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/repository"
	"github.com/coolairsites/pipeline-api/service"
	"github.com/coolairsites/pipeline-api/utils"
)

// BookAppointment books a slot. The scheduled-slot uniqueness is enforced
// by the partial unique index; the pre-check only exists for a friendlier
// error on the common path. When a lead is matched (by id, or by owner
// email/phone through the company record) it moves to
// appointment_scheduled in the same transaction as the insert.
func BookAppointment(c *gin.Context) {
	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if missing := req.MissingFields(); len(missing) > 0 {
		utils.HandleError(c, utils.CreateMissingFieldError(missing))
		return
	}
	if !utils.IsValidDate(req.Date) {
		utils.HandleError(c, utils.CreateBadRequestError("date must be YYYY-MM-DD"))
		return
	}
	if !utils.IsValidTimeSlot(req.Time) {
		utils.HandleError(c, utils.CreateBadRequestError("time must be HH:MM (24h)"))
		return
	}
	if !utils.IsValidEmail(req.OwnerEmail) {
		utils.HandleError(c, utils.CreateBadRequestError("ownerEmail is not a valid email address"))
		return
	}

	ctx := repository.GetContext()
	appointments := repository.Collection(repository.AppointmentsCollection)

	// Friendly conflict check; the index below is the actual guarantee.
	taken, err := appointments.CountDocuments(ctx, bson.M{
		"date":   req.Date,
		"time":   req.Time,
		"status": models.AppointmentScheduled,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if taken > 0 {
		utils.HandleError(c, utils.CreateSlotTakenError(req.Date, req.Time))
		return
	}

	lead := matchLead(ctx, &req)

	now := time.Now()
	appointment := models.Appointment{
		CompanyName: req.CompanyName,
		OwnerName:   req.OwnerName,
		OwnerEmail:  req.OwnerEmail,
		Phone:       req.Phone,
		Date:        req.Date,
		Time:        req.Time,
		CreatedBy:   req.CreatedBy,
		Status:      models.AppointmentScheduled,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if lead != nil {
		appointment.LeadID = lead.ID.Hex()
	}

	leadUpdated := false
	_, err = repository.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := appointments.InsertOne(sc, appointment)
		if err != nil {
			return nil, err
		}
		appointment.ID = result.InsertedID.(primitive.ObjectID)

		if lead == nil {
			return nil, nil
		}

		// Terminal leads keep their stage; the booking still succeeds.
		if err := service.ValidateTransition(lead.Stage, models.StageAppointmentScheduled); err != nil {
			utils.Logger.Warn().
				Str("leadId", lead.ID.Hex()).
				Str("stage", string(lead.Stage)).
				Msg("matched lead not transitioned for appointment")
			return nil, nil
		}

		if err := service.ApplyTransition(sc, lead, models.StageAppointmentScheduled, req.CreatedBy, "", ""); err != nil {
			return nil, err
		}

		entry := models.ActivityLogEntry{
			LeadID:    lead.ID.Hex(),
			CompanyID: lead.CompanyID,
			UserName:  req.CreatedBy,
			Action:    models.ActionAppointmentSet,
			ActionData: map[string]interface{}{
				"appointmentId": appointment.ID.Hex(),
				"date":          req.Date,
				"time":          req.Time,
			},
			CreatedAt: now,
		}
		if _, err := repository.Collection(repository.ActivityLogCollection).InsertOne(sc, entry); err != nil {
			return nil, err
		}

		leadUpdated = true
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.HandleError(c, utils.CreateSlotTakenError(req.Date, req.Time))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"appointmentId": appointment.ID.Hex(),
		"date":          req.Date,
		"time":          req.Time,
		"leadUpdated":   leadUpdated,
	}, "appointment booked")

	c.JSON(http.StatusOK, models.BookAppointmentResponse{
		Appointment: appointment,
		LeadUpdated: leadUpdated,
	})
}

// matchLead finds the lead for a booking: explicit leadId first, then the
// company record by owner email or phone. Returns nil when nothing
// matches; appointments may exist without a lead.
func matchLead(ctx context.Context, req *models.BookAppointmentRequest) *models.Lead {
	if req.LeadID != "" {
		lead, err := findLeadByID(req.LeadID)
		if err == nil {
			return lead
		}
		utils.Logger.Warn().Str("leadId", req.LeadID).Msg("booking referenced an unknown lead")
	}

	or := []bson.M{{"ownerEmail": req.OwnerEmail}}
	if req.Phone != "" {
		or = append(or, bson.M{"phone": req.Phone})
	}

	var company models.Company
	err := repository.Collection(repository.CompaniesCollection).
		FindOne(ctx, bson.M{"$or": or}).
		Decode(&company)
	if err != nil {
		return nil
	}

	var lead models.Lead
	err = repository.Collection(repository.LeadsCollection).
		FindOne(ctx, bson.M{"companyId": company.ID.Hex()}).
		Decode(&lead)
	if err != nil {
		return nil
	}

	return &lead
}

// UpdateAppointmentStatus changes an appointment's status. Cancelling
// frees its slot; moving back to scheduled re-runs the slot check via the
// unique index.
func UpdateAppointmentStatus(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if !models.IsValidAppointmentStatus(req.Status) {
		utils.HandleError(c, utils.CreateBadRequestError("unknown appointment status "+strconv.Quote(req.Status)))
		return
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("appointment"))
		return
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.AppointmentsCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.HandleError(c, utils.CreateConflictError("slot already has a scheduled appointment"))
			return
		}
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("appointment"))
		return
	}

	utils.LogInfo(map[string]interface{}{
		"appointmentId": id,
		"status":        req.Status,
		"updatedBy":     req.UpdatedBy,
	}, "appointment status updated")

	utils.SuccessResponse(c, nil, "appointment updated")
}

// ListAppointments returns a page of appointments, filterable by date and
// status.
func ListAppointments(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	filter := bson.M{}
	if date := c.Query("date"); date != "" {
		filter["date"] = date
	}
	if status := c.Query("status"); status != "" {
		if !models.IsValidAppointmentStatus(status) {
			utils.HandleError(c, utils.CreateBadRequestError("unknown appointment status "+strconv.Quote(status)))
			return
		}
		filter["status"] = status
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.AppointmentsCollection)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, appointments, total, page, limit)
}
