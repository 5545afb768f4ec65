package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadStage is the lead's position in the sales funnel.
type LeadStage string

const (
	StageNewLead              LeadStage = "new_lead"
	StageContacted            LeadStage = "contacted"
	StageWebsiteViewed        LeadStage = "website_viewed"
	StageAppointmentScheduled LeadStage = "appointment_scheduled"
	StageSaleClosed           LeadStage = "sale_closed"
	StageUnsuccessfulCall     LeadStage = "unsuccessful_call"
	StageNotInterested        LeadStage = "not_interested"
)

// PipelineStageOrder is the display order used by the pipeline board.
var PipelineStageOrder = []LeadStage{
	StageNewLead,
	StageContacted,
	StageWebsiteViewed,
	StageAppointmentScheduled,
	StageSaleClosed,
	StageUnsuccessfulCall,
	StageNotInterested,
}

// IsValidLeadStage reports whether stage belongs to the canonical set.
func IsValidLeadStage(stage string) bool {
	for _, s := range PipelineStageOrder {
		if string(s) == stage {
			return true
		}
	}
	return false
}

// IsTerminalStage reports whether a stage admits no further transitions.
func IsTerminalStage(stage LeadStage) bool {
	return stage == StageSaleClosed || stage == StageNotInterested
}

// Lead is one company's record in the sales pipeline. One lead per company.
type Lead struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CompanyID    string             `json:"companyId" bson:"companyId"`
	CompanyName  string             `json:"companyName" bson:"companyName"`
	Stage        LeadStage          `json:"stage" bson:"stage"`
	CreatedBy    string             `json:"createdBy" bson:"createdBy"`
	LastContact  *time.Time         `json:"lastContactAt,omitempty" bson:"lastContactAt,omitempty"`
	NextFollowUp *time.Time         `json:"nextFollowUpAt,omitempty" bson:"nextFollowUpAt,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateLeadRequest puts a company into the pipeline.
type CreateLeadRequest struct {
	CompanyID string `json:"companyId" binding:"required"`
	Actor     string `json:"actor" binding:"required"`
}

// TransitionRequest moves a lead to a new stage.
type TransitionRequest struct {
	NewStage string `json:"newStage" binding:"required"`
	Actor    string `json:"actor" binding:"required"`
	Note     string `json:"note"`
}

// FollowUpRequest updates the lead's contact bookkeeping timestamps.
type FollowUpRequest struct {
	Actor          string     `json:"actor" binding:"required"`
	LastContactAt  *time.Time `json:"lastContactAt"`
	NextFollowUpAt *time.Time `json:"nextFollowUpAt"`
}
