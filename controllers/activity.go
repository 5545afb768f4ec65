package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/repository"
	"github.com/coolairsites/pipeline-api/service"
	"github.com/coolairsites/pipeline-api/utils"
)

// GetLeadActivity returns the lead's activity entries newest-first.
// Cursor pagination: pass before=<RFC3339> from the oldest entry of the
// previous page to continue.
func GetLeadActivity(c *gin.Context) {
	leadID := c.Param("id")

	lead, err := findLeadByID(leadID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	filter := bson.M{"leadId": lead.ID.Hex()}
	if before := c.Query("before"); before != "" {
		beforeTime, err := time.Parse(time.RFC3339, before)
		if err != nil {
			utils.HandleError(c, utils.CreateBadRequestError("before must be an RFC3339 timestamp"))
			return
		}
		filter["createdAt"] = bson.M{"$lt": beforeTime}
	}

	ctx := repository.GetContext()
	findOptions := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit)

	cursor, err := repository.Collection(repository.ActivityLogCollection).Find(ctx, filter, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	entries := []models.ActivityLogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"leadId": leadID,
		"count":  len(entries),
	}, "lead activity fetched")

	c.JSON(http.StatusOK, entries)
}

// RecordLeadActivity appends an arbitrary action to the lead's log.
func RecordLeadActivity(c *gin.Context) {
	leadID := c.Param("id")

	var req models.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	lead, err := findLeadByID(leadID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	entry, err := service.RecordActivityFn(repository.GetContext(), models.ActivityLogEntry{
		LeadID:     lead.ID.Hex(),
		CompanyID:  lead.CompanyID,
		SessionID:  req.SessionID,
		UserName:   req.UserName,
		Action:     req.Action,
		ActionData: req.ActionData,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}
