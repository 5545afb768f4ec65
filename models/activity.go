package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conventional activity action names. The action field is free-form but
// everything the API writes uses one of these.
const (
	ActionLeadCreated     = "lead_created"
	ActionStageChanged    = "stage_changed"
	ActionNoteAdded       = "note_added"
	ActionTagApplied      = "tag_applied"
	ActionAppointmentSet  = "appointment_set"
	ActionFollowUpUpdated = "follow_up_updated"
)

// ActivityLogEntry is one append-only audit record for a lead. Entries are
// never updated or deleted outside the admin pipeline reset.
type ActivityLogEntry struct {
	ID         primitive.ObjectID     `json:"_id,omitempty" bson:"_id,omitempty"`
	LeadID     string                 `json:"leadId" bson:"leadId"`
	CompanyID  string                 `json:"companyId" bson:"companyId"`
	SessionID  string                 `json:"sessionId,omitempty" bson:"sessionId,omitempty"`
	UserName   string                 `json:"userName" bson:"userName"`
	Action     string                 `json:"action" bson:"action"`
	ActionData map[string]interface{} `json:"actionData,omitempty" bson:"actionData,omitempty"`
	CreatedAt  time.Time              `json:"createdAt" bson:"createdAt"`
}

// RecordActivityRequest records an arbitrary action against a lead.
type RecordActivityRequest struct {
	UserName   string                 `json:"userName" binding:"required"`
	Action     string                 `json:"action" binding:"required"`
	ActionData map[string]interface{} `json:"actionData"`
	SessionID  string                 `json:"sessionId"`
}
