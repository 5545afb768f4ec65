package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/repository"
	"github.com/coolairsites/pipeline-api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ValidateTransition checks a stage move against the canonical stage set.
// Any non-terminal stage may move to any stage, including itself: same-
// stage transitions are deliberately allowed (and still logged) so the
// activity log records every attempt. Terminal stages admit no moves.
func ValidateTransition(from, to models.LeadStage) error {
	if !models.IsValidLeadStage(string(to)) {
		return utils.CreateInvalidStageError(fmt.Sprintf("unknown stage %q", to))
	}
	if models.IsTerminalStage(from) && from != to {
		return utils.CreateInvalidStageError(
			fmt.Sprintf("lead is in terminal stage %q and cannot move to %q", from, to),
		)
	}
	return nil
}

// ApplyTransition writes the stage change and its activity-log entry using
// sc. Callers own the transaction; both writes commit or neither does.
func ApplyTransition(sc mongo.SessionContext, lead *models.Lead, newStage models.LeadStage, actor, note, sessionID string) error {
	now := time.Now()

	_, err := repository.Collection(repository.LeadsCollection).UpdateOne(
		sc,
		bson.M{"_id": lead.ID},
		bson.M{"$set": bson.M{"stage": newStage, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("updating lead stage: %w", err)
	}

	entry := models.ActivityLogEntry{
		LeadID:    lead.ID.Hex(),
		CompanyID: lead.CompanyID,
		SessionID: sessionID,
		UserName:  actor,
		Action:    models.ActionStageChanged,
		ActionData: map[string]interface{}{
			"from": string(lead.Stage),
			"to":   string(newStage),
			"note": note,
		},
		CreatedAt: now,
	}

	_, err = repository.Collection(repository.ActivityLogCollection).InsertOne(sc, entry)
	if err != nil {
		return fmt.Errorf("appending stage_changed activity: %w", err)
	}

	lead.Stage = newStage
	lead.UpdatedAt = now
	return nil
}

// TransitionLeadFn validates and applies a stage transition in one
// transaction. Shared by the transition endpoint and appointment booking.
func TransitionLeadFn(ctx context.Context, leadID string, newStage models.LeadStage, actor, note, sessionID string) (*models.Lead, error) {
	objID, err := primitive.ObjectIDFromHex(leadID)
	if err != nil {
		return nil, utils.CreateNotFoundError("lead")
	}

	var lead models.Lead
	err = repository.Collection(repository.LeadsCollection).
		FindOne(ctx, bson.M{"_id": objID}).
		Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("lead")
		}
		return nil, err
	}

	if err := ValidateTransition(lead.Stage, newStage); err != nil {
		return nil, err
	}

	fromStage := lead.Stage
	_, err = repository.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, ApplyTransition(sc, &lead, newStage, actor, note, sessionID)
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo(map[string]interface{}{
		"leadId": leadID,
		"from":   fromStage,
		"to":     newStage,
		"actor":  actor,
	}, "lead stage transitioned")

	return &lead, nil
}
