package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validBookingRequest() BookAppointmentRequest {
	return BookAppointmentRequest{
		CompanyName: "Smith Heating & Air",
		OwnerName:   "Bob Smith",
		OwnerEmail:  "bob@smithhvac.com",
		Phone:       "555-0101",
		Date:        "2025-03-01",
		Time:        "10:00",
		CreatedBy:   "jared",
	}
}

func TestBookAppointmentRequestMissingFields(t *testing.T) {
	req := validBookingRequest()
	assert.Empty(t, req.MissingFields())

	req = validBookingRequest()
	req.CompanyName = ""
	req.Date = ""
	assert.Equal(t, []string{"companyName", "date"}, req.MissingFields())

	req = BookAppointmentRequest{}
	assert.Equal(t,
		[]string{"companyName", "ownerName", "ownerEmail", "date", "time", "createdBy"},
		req.MissingFields(),
	)

	// Optional fields never count as missing
	req = validBookingRequest()
	req.Phone = ""
	req.LeadID = ""
	req.Notes = ""
	assert.Empty(t, req.MissingFields())
}

func TestIsValidAppointmentStatus(t *testing.T) {
	for _, status := range []string{"scheduled", "completed", "cancelled", "no_show"} {
		assert.True(t, IsValidAppointmentStatus(status), "status %q should be valid", status)
	}
	for _, status := range []string{"", "booked", "SCHEDULED", "noshow"} {
		assert.False(t, IsValidAppointmentStatus(status), "status %q should be invalid", status)
	}
}
