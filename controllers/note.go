package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/repository"
	"github.com/coolairsites/pipeline-api/utils"
)

// AddLeadNote creates a note on a lead and records the note_added
// activity entry in the same transaction.
func AddLeadNote(c *gin.Context) {
	leadID := c.Param("id")

	var req models.CreateLeadNoteRequest
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
	note := models.LeadNote{
		LeadID:     lead.ID.Hex(),
		Content:    req.Content,
		AuthorName: req.AuthorName,
		IsPrivate:  req.IsPrivate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ctx := repository.GetContext()
	_, err = repository.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := repository.Collection(repository.LeadNotesCollection).InsertOne(sc, note)
		if err != nil {
			return nil, err
		}
		note.ID = result.InsertedID.(primitive.ObjectID)

		entry := models.ActivityLogEntry{
			LeadID:    lead.ID.Hex(),
			CompanyID: lead.CompanyID,
			UserName:  req.AuthorName,
			Action:    models.ActionNoteAdded,
			ActionData: map[string]interface{}{
				"noteId":    note.ID.Hex(),
				"isPrivate": note.IsPrivate,
			},
			CreatedAt: now,
		}
		_, err = repository.Collection(repository.ActivityLogCollection).InsertOne(sc, entry)
		return nil, err
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"noteId": note.ID.Hex(),
		"leadId": leadID,
	}, "lead note created")

	c.JSON(http.StatusCreated, gin.H{
		"message": "note created",
		"note":    note,
	})
}

// GetLeadNotes returns the lead's notes newest-first.
func GetLeadNotes(c *gin.Context) {
	leadID := c.Param("id")

	lead, err := findLeadByID(leadID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	ctx := repository.GetContext()
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := repository.Collection(repository.LeadNotesCollection).
		Find(ctx, bson.M{"leadId": lead.ID.Hex()}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	notes := []models.LeadNote{}
	if err := cursor.All(ctx, &notes); err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}
