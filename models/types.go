package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole enumerates internal user roles.
type UserRole string

const (
	UserRoleADMIN       UserRole = "ADMIN"       // platform administrator
	UserRoleSALES_AGENT UserRole = "SALES_AGENT" // pipeline sales agent
)

// UserStatus enumerates account states.
type UserStatus string

const (
	UserStatusACTIVE   UserStatus = "active"
	UserStatusDISABLED UserStatus = "disabled"
)

// User is an internal sales-team account.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"` // never returned
	Email     string             `bson:"email" json:"email"`
	Role      UserRole           `bson:"role" json:"role"`
	Status    UserStatus         `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type (
	// LoginRequest authenticates an internal user.
	LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse carries the signed token and user payload.
	LoginResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	// ResetPipelineRequest names the test cohort to wipe.
	ResetPipelineRequest struct {
		LeadIDs []string `json:"leadIds" binding:"required"`
	}
)

// PipelineStageCount is one bucket in the pipeline summary.
type PipelineStageCount struct {
	Stage LeadStage `json:"stage" bson:"_id"`
	Count int64     `json:"count" bson:"count"`
}

// PipelineSummary is the dashboard's stage distribution view.
type PipelineSummary struct {
	Stages            []PipelineStageCount `json:"stages"`
	TotalLeads        int64                `json:"totalLeads"`
	AppointmentsToday int64                `json:"appointmentsToday"`
}
