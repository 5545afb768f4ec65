package controllers

import (
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

// CreateLead puts a company into the pipeline at new_lead. One lead per
// company; the unique index on companyId backs the 409.
func CreateLead(c *gin.Context) {
	var req models.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx := repository.GetContext()

	companyObjID, err := primitive.ObjectIDFromHex(req.CompanyID)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("company"))
		return
	}

	var company models.Company
	err = repository.Collection(repository.CompaniesCollection).
		FindOne(ctx, bson.M{"_id": companyObjID}).
		Decode(&company)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("company"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	lead := models.Lead{
		CompanyID:   req.CompanyID,
		CompanyName: company.Name,
		Stage:       models.StageNewLead,
		CreatedBy:   req.Actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created models.Lead
	_, err = repository.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := repository.Collection(repository.LeadsCollection).InsertOne(sc, lead)
		if err != nil {
			return nil, err
		}
		lead.ID = result.InsertedID.(primitive.ObjectID)

		entry := models.ActivityLogEntry{
			LeadID:    lead.ID.Hex(),
			CompanyID: lead.CompanyID,
			UserName:  req.Actor,
			Action:    models.ActionLeadCreated,
			ActionData: map[string]interface{}{
				"companyName": company.Name,
			},
			CreatedAt: now,
		}
		if _, err := repository.Collection(repository.ActivityLogCollection).InsertOne(sc, entry); err != nil {
			return nil, err
		}

		created = lead
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.HandleError(c, utils.CreateConflictError("this company already has a pipeline lead"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"leadId":    created.ID.Hex(),
		"companyId": created.CompanyID,
	}, "lead created")

	c.JSON(http.StatusCreated, created)
}

// GetLead returns one lead.
func GetLead(c *gin.Context) {
	lead, err := findLeadByID(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

// ListLeads returns a page of leads, optionally filtered by stage.
func ListLeads(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	filter := bson.M{}
	if stage := c.Query("stage"); stage != "" {
		if !models.IsValidLeadStage(stage) {
			utils.HandleError(c, utils.CreateInvalidStageError("unknown stage "+strconv.Quote(stage)))
			return
		}
		filter["stage"] = stage
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.LeadsCollection)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	findOptions := options.Find().
		SetSort(bson.M{"updatedAt": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, leads, total, page, limit)
}

// TransitionLeadStage moves a lead to a new stage. The lead write and the
// stage_changed activity entry land in one transaction.
func TransitionLeadStage(c *gin.Context) {
	leadID := c.Param("id")

	var req models.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if !models.IsValidLeadStage(req.NewStage) {
		utils.HandleError(c, utils.CreateInvalidStageError("unknown stage "+strconv.Quote(req.NewStage)))
		return
	}

	lead, err := service.TransitionLeadFn(
		repository.GetContext(),
		leadID,
		models.LeadStage(req.NewStage),
		req.Actor,
		req.Note,
		"",
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// UpdateLeadFollowUp sets the lead's contact bookkeeping timestamps.
func UpdateLeadFollowUp(c *gin.Context) {
	leadID := c.Param("id")

	var req models.FollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	lead, err := findLeadByID(leadID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	update := bson.M{"updatedAt": now}
	actionData := map[string]interface{}{}
	if req.LastContactAt != nil {
		update["lastContactAt"] = *req.LastContactAt
		actionData["lastContactAt"] = req.LastContactAt.Format(time.RFC3339)
	}
	if req.NextFollowUpAt != nil {
		update["nextFollowUpAt"] = *req.NextFollowUpAt
		actionData["nextFollowUpAt"] = req.NextFollowUpAt.Format(time.RFC3339)
	}

	ctx := repository.GetContext()
	_, err = repository.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		_, err := repository.Collection(repository.LeadsCollection).UpdateOne(
			sc,
			bson.M{"_id": lead.ID},
			bson.M{"$set": update},
		)
		if err != nil {
			return nil, err
		}

		entry := models.ActivityLogEntry{
			LeadID:     lead.ID.Hex(),
			CompanyID:  lead.CompanyID,
			UserName:   req.Actor,
			Action:     models.ActionFollowUpUpdated,
			ActionData: actionData,
			CreatedAt:  now,
		}
		_, err = repository.Collection(repository.ActivityLogCollection).InsertOne(sc, entry)
		return nil, err
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "follow-up updated")
}

// findLeadByID loads a lead or returns a NotFound ApiError.
func findLeadByID(id string) (*models.Lead, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.CreateNotFoundError("lead")
	}

	var lead models.Lead
	err = repository.Collection(repository.LeadsCollection).
		FindOne(repository.GetContext(), bson.M{"_id": objID}).
		Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("lead")
		}
		return nil, err
	}

	return &lead, nil
}
