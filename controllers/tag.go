package controllers

import (
	"context"
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

// ApplyLeadTag attaches a tag to a lead. Unknown tag types are accepted:
// the catalog styles the dashboard, it does not gate writes. Duplicate
// tags of the same type are valid and represent repeated events.
func ApplyLeadTag(c *gin.Context) {
	leadID := c.Param("id")

	var req models.ApplyTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	lead, err := findLeadByID(leadID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	ctx := repository.GetContext()

	// Warn when the tag is off-catalog; the write still proceeds.
	defCount, err := repository.Collection(repository.TagDefinitionsCollection).
		CountDocuments(ctx, bson.M{"tagType": req.TagType})
	if err == nil && defCount == 0 {
		utils.Logger.Warn().
			Str("tagType", req.TagType).
			Str("leadId", leadID).
			Msg("tag applied without a catalog definition")
	}

	now := time.Now()
	tag := models.LeadTag{
		LeadID:          lead.ID.Hex(),
		TagType:         req.TagType,
		CreatedBy:       req.Actor,
		IsAutoGenerated: req.Auto,
		Metadata:        req.Metadata,
		CreatedAt:       now,
	}

	_, err = repository.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := repository.Collection(repository.LeadTagsCollection).InsertOne(sc, tag)
		if err != nil {
			return nil, err
		}
		tag.ID = result.InsertedID.(primitive.ObjectID)

		entry := models.ActivityLogEntry{
			LeadID:    lead.ID.Hex(),
			CompanyID: lead.CompanyID,
			UserName:  req.Actor,
			Action:    models.ActionTagApplied,
			ActionData: map[string]interface{}{
				"tagType": req.TagType,
				"auto":    req.Auto,
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
		"tagId":   tag.ID.Hex(),
		"leadId":  leadID,
		"tagType": req.TagType,
		"auto":    req.Auto,
	}, "tag applied")

	c.JSON(http.StatusCreated, tag)
}

// GetLeadTags returns the lead's tag assignments joined with catalog
// definitions. Assignments without a definition come back raw.
func GetLeadTags(c *gin.Context) {
	leadID := c.Param("id")

	lead, err := findLeadByID(leadID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	ctx := repository.GetContext()
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := repository.Collection(repository.LeadTagsCollection).
		Find(ctx, bson.M{"leadId": lead.ID.Hex()}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	tags := []models.LeadTag{}
	if err := cursor.All(ctx, &tags); err != nil {
		utils.HandleError(c, err)
		return
	}

	defs, err := loadTagDefinitions(ctx)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MergeTagDefinitions(tags, defs))
}

// ListTagDefinitions returns the tag catalog.
func ListTagDefinitions(c *gin.Context) {
	ctx := repository.GetContext()

	cursor, err := repository.Collection(repository.TagDefinitionsCollection).
		Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"tagType": 1}))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	defs := []models.TagDefinition{}
	if err := cursor.All(ctx, &defs); err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, defs)
}

// loadTagDefinitions returns the catalog keyed by tagType.
func loadTagDefinitions(ctx context.Context) (map[string]models.TagDefinition, error) {
	cursor, err := repository.Collection(repository.TagDefinitionsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var defs []models.TagDefinition
	if err := cursor.All(ctx, &defs); err != nil {
		return nil, err
	}

	byType := make(map[string]models.TagDefinition, len(defs))
	for _, d := range defs {
		byType[d.TagType] = d
	}
	return byType, nil
}

// MergeTagDefinitions joins assignments with their catalog definitions,
// leaving display fields empty for unknown tag types.
func MergeTagDefinitions(tags []models.LeadTag, defs map[string]models.TagDefinition) []models.LeadTagView {
	views := make([]models.LeadTagView, 0, len(tags))
	for _, tag := range tags {
		view := models.LeadTagView{LeadTag: tag}
		if def, ok := defs[tag.TagType]; ok {
			view.DisplayName = def.DisplayName
			view.Color = def.Color
			view.Description = def.Description
		}
		views = append(views, view)
	}
	return views
}
