package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/repository"
	"github.com/coolairsites/pipeline-api/utils"
)

// GetPipelineSummary returns lead counts per stage plus today's scheduled
// appointment count, in pipeline display order.
func GetPipelineSummary(c *gin.Context) {
	ctx := repository.GetContext()

	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$stage", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := repository.Collection(repository.LeadsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var raw []models.PipelineStageCount
	if err := cursor.All(ctx, &raw); err != nil {
		utils.HandleError(c, err)
		return
	}

	counts := make(map[models.LeadStage]int64, len(raw))
	var total int64
	for _, bucket := range raw {
		counts[bucket.Stage] = bucket.Count
		total += bucket.Count
	}

	// Emit every stage in board order, zero counts included.
	stages := make([]models.PipelineStageCount, 0, len(models.PipelineStageOrder))
	for _, stage := range models.PipelineStageOrder {
		stages = append(stages, models.PipelineStageCount{
			Stage: stage,
			Count: counts[stage],
		})
	}

	today := time.Now().Format("2006-01-02")
	appointmentsToday, err := repository.Collection(repository.AppointmentsCollection).CountDocuments(ctx, bson.M{
		"date":   today,
		"status": models.AppointmentScheduled,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PipelineSummary{
		Stages:            stages,
		TotalLeads:        total,
		AppointmentsToday: appointmentsToday,
	})
}
