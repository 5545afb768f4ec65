package service

import (
	"context"
	"net/http"
	"time"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/repository"
	"github.com/coolairsites/pipeline-api/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewSessionID mints an id that groups activity entries from one work
// session.
func NewSessionID() string {
	return uuid.NewString()
}

// RecordActivityFn appends one activity-log entry. Validation happens
// before the write; existing entries are never touched.
func RecordActivityFn(ctx context.Context, entry models.ActivityLogEntry) (*models.ActivityLogEntry, error) {
	if entry.LeadID == "" || entry.UserName == "" || entry.Action == "" {
		return nil, &utils.ApiError{
			Message:    "leadId, userName and action are required",
			StatusCode: http.StatusBadRequest,
			ErrorCode:  utils.CodeMissingField,
		}
	}

	if entry.SessionID == "" {
		entry.SessionID = NewSessionID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	collection := repository.Collection(repository.ActivityLogCollection)
	result, err := collection.InsertOne(ctx, entry)
	if err != nil {
		utils.LogError(err, map[string]interface{}{
			"leadId": entry.LeadID,
			"action": entry.Action,
		}, "appending activity entry failed")
		return nil, err
	}

	entry.ID = result.InsertedID.(primitive.ObjectID)

	utils.LogInfo(map[string]interface{}{
		"id":     entry.ID.Hex(),
		"leadId": entry.LeadID,
		"action": entry.Action,
		"user":   entry.UserName,
	}, "activity entry recorded")

	return &entry, nil
}
