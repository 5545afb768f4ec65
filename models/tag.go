package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TagDefinition is catalog reference data for rendering tags. The catalog
// is descriptive only: assignments with an unknown tagType are accepted
// and rendered without display metadata.
type TagDefinition struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	TagType         string             `json:"tagType" bson:"tagType"`
	DisplayName     string             `json:"displayName" bson:"displayName"`
	Color           string             `json:"color" bson:"color"`
	IsAutoGenerated bool               `json:"isAutoGenerated" bson:"isAutoGenerated"`
	Description     string             `json:"description" bson:"description"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// LeadTag is one tag assignment on a lead. Duplicate (leadId, tagType)
// pairs are valid and represent repeated events.
type LeadTag struct {
	ID              primitive.ObjectID     `json:"_id,omitempty" bson:"_id,omitempty"`
	LeadID          string                 `json:"leadId" bson:"leadId"`
	TagType         string                 `json:"tagType" bson:"tagType"`
	CreatedBy       string                 `json:"createdBy" bson:"createdBy"`
	IsAutoGenerated bool                   `json:"isAutoGenerated" bson:"isAutoGenerated"`
	Metadata        map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt       time.Time              `json:"createdAt" bson:"createdAt"`
}

// LeadTagView is a tag assignment joined with its catalog definition.
// DisplayName and Color are empty when no definition exists.
type LeadTagView struct {
	LeadTag     `bson:",inline"`
	DisplayName string `json:"displayName,omitempty" bson:"-"`
	Color       string `json:"color,omitempty" bson:"-"`
	Description string `json:"description,omitempty" bson:"-"`
}

// ApplyTagRequest attaches a tag to a lead.
type ApplyTagRequest struct {
	TagType  string                 `json:"tagType" binding:"required"`
	Actor    string                 `json:"actor" binding:"required"`
	Auto     bool                   `json:"auto"`
	Metadata map[string]interface{} `json:"metadata"`
}
