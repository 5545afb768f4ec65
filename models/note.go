package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadNote is one free-text note on a lead. Notes live in their own
// collection (normalized, not embedded in the lead document).
type LeadNote struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	LeadID     string             `json:"leadId" bson:"leadId"`
	Content    string             `json:"content" bson:"content"`
	AuthorName string             `json:"authorName" bson:"authorName"`
	IsPrivate  bool               `json:"isPrivate" bson:"isPrivate"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateLeadNoteRequest adds a note to a lead.
type CreateLeadNoteRequest struct {
	Content    string `json:"content" binding:"required"`
	AuthorName string `json:"authorName" binding:"required"`
	IsPrivate  bool   `json:"isPrivate"`
}
