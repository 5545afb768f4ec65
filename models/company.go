package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is an HVAC business tracked by the platform. Leads reference a
// company one-to-one; appointment booking matches companies by owner
// email or phone.
type Company struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Slug       string             `json:"slug" bson:"slug"`
	OwnerName  string             `json:"ownerName" bson:"ownerName"`
	OwnerEmail string             `json:"ownerEmail" bson:"ownerEmail"`
	Phone      string             `json:"phone" bson:"phone"`
	City       string             `json:"city" bson:"city"`
	State      string             `json:"state" bson:"state"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CompanyCreateRequest creates a company record.
type CompanyCreateRequest struct {
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug" binding:"required"`
	OwnerName  string `json:"ownerName" binding:"required"`
	OwnerEmail string `json:"ownerEmail" binding:"required,email"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// CompanyUpdateRequest updates mutable company fields.
type CompanyUpdateRequest struct {
	Name       string `json:"name"`
	OwnerName  string `json:"ownerName"`
	OwnerEmail string `json:"ownerEmail" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	State      string `json:"state"`
}
