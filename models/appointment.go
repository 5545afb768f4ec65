package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatus enumerates appointment lifecycle states.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// IsValidAppointmentStatus reports whether status is a recognized state.
func IsValidAppointmentStatus(status string) bool {
	switch AppointmentStatus(status) {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// Appointment is a booked calendar slot. At most one non-cancelled
// appointment may occupy a (date, time) slot; a partial unique index on
// status == "scheduled" enforces this at the database.
type Appointment struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	LeadID      string             `json:"leadId,omitempty" bson:"leadId,omitempty"`
	CompanyName string             `json:"companyName" bson:"companyName"`
	OwnerName   string             `json:"ownerName" bson:"ownerName"`
	OwnerEmail  string             `json:"ownerEmail" bson:"ownerEmail"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Date        string             `json:"date" bson:"date"` // YYYY-MM-DD
	Time        string             `json:"time" bson:"time"` // HH:MM, 24h
	CreatedBy   string             `json:"createdBy" bson:"createdBy"`
	Status      AppointmentStatus  `json:"status" bson:"status"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BookAppointmentRequest books a slot for a company, optionally against a
// known lead.
type BookAppointmentRequest struct {
	CompanyName string `json:"companyName"`
	OwnerName   string `json:"ownerName"`
	OwnerEmail  string `json:"ownerEmail"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	CreatedBy   string `json:"createdBy"`
	LeadID      string `json:"leadId"`
	Notes       string `json:"notes"`
}

// MissingFields returns the names of required booking fields that are
// absent. Field presence is validated before any write.
func (r *BookAppointmentRequest) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"companyName", r.CompanyName},
		{"ownerName", r.OwnerName},
		{"ownerEmail", r.OwnerEmail},
		{"date", r.Date},
		{"time", r.Time},
		{"createdBy", r.CreatedBy},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// BookAppointmentResponse is the booking result. LeadUpdated reports
// whether an existing lead was matched and moved to appointment_scheduled.
type BookAppointmentResponse struct {
	Appointment Appointment `json:"appointment"`
	LeadUpdated bool        `json:"leadUpdated"`
}

// UpdateAppointmentStatusRequest changes an appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status    string `json:"status" binding:"required"`
	UpdatedBy string `json:"updatedBy" binding:"required"`
}
