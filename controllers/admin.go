package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/repository"
	"github.com/coolairsites/pipeline-api/utils"
)

// ResetTestPipeline wipes activity, tags, notes and appointments for the
// named leads and resets their stage to new_lead. Test/demo utility only;
// routing restricts it to admin tokens.
func ResetTestPipeline(c *gin.Context) {
	var req models.ResetPipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(req.LeadIDs) == 0 {
		utils.HandleError(c, utils.CreateMissingFieldError([]string{"leadIds"}))
		return
	}

	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	objIDs := make([]primitive.ObjectID, 0, len(req.LeadIDs))
	for _, id := range req.LeadIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			utils.HandleError(c, utils.CreateBadRequestError("invalid lead id "+id))
			return
		}
		objIDs = append(objIDs, objID)
	}

	ctx := repository.GetContext()
	leadFilter := bson.M{"leadId": bson.M{"$in": req.LeadIDs}}

	summary := gin.H{}
	_, err = repository.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		activity, err := repository.Collection(repository.ActivityLogCollection).DeleteMany(sc, leadFilter)
		if err != nil {
			return nil, err
		}
		tags, err := repository.Collection(repository.LeadTagsCollection).DeleteMany(sc, leadFilter)
		if err != nil {
			return nil, err
		}
		notes, err := repository.Collection(repository.LeadNotesCollection).DeleteMany(sc, leadFilter)
		if err != nil {
			return nil, err
		}
		appointments, err := repository.Collection(repository.AppointmentsCollection).DeleteMany(sc, leadFilter)
		if err != nil {
			return nil, err
		}

		leads, err := repository.Collection(repository.LeadsCollection).UpdateMany(
			sc,
			bson.M{"_id": bson.M{"$in": objIDs}},
			bson.M{"$set": bson.M{
				"stage":     models.StageNewLead,
				"updatedAt": time.Now(),
			}},
		)
		if err != nil {
			return nil, err
		}

		summary = gin.H{
			"leadsReset":          leads.ModifiedCount,
			"activityDeleted":     activity.DeletedCount,
			"tagsDeleted":         tags.DeletedCount,
			"notesDeleted":        notes.DeletedCount,
			"appointmentsDeleted": appointments.DeletedCount,
		}
		return nil, nil
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"leadIds": req.LeadIDs,
		"admin":   user.Username,
		"summary": summary,
	}, "test pipeline reset")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

// GetDBStatus reports per-collection counts for operational checks.
func GetDBStatus(c *gin.Context) {
	status, err := repository.ExecuteDbOperation(func() (interface{}, error) {
		return repository.GetDatabaseStatus()
	}, 3)
	if err != nil {
		utils.ErrorResponse(c, "fetching database status failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, status)
}
