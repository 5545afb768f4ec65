package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidLeadStage(t *testing.T) {
	valid := []string{
		"new_lead",
		"contacted",
		"website_viewed",
		"appointment_scheduled",
		"sale_closed",
		"unsuccessful_call",
		"not_interested",
	}
	for _, stage := range valid {
		assert.True(t, IsValidLeadStage(stage), "stage %q should be valid", stage)
	}

	invalid := []string{"", "closed", "NEW_LEAD", "new lead", "qualified"}
	for _, stage := range invalid {
		assert.False(t, IsValidLeadStage(stage), "stage %q should be invalid", stage)
	}
}

func TestIsTerminalStage(t *testing.T) {
	assert.True(t, IsTerminalStage(StageSaleClosed))
	assert.True(t, IsTerminalStage(StageNotInterested))

	assert.False(t, IsTerminalStage(StageNewLead))
	assert.False(t, IsTerminalStage(StageContacted))
	assert.False(t, IsTerminalStage(StageWebsiteViewed))
	assert.False(t, IsTerminalStage(StageAppointmentScheduled))
	assert.False(t, IsTerminalStage(StageUnsuccessfulCall))
}

func TestPipelineStageOrderCoversAllStages(t *testing.T) {
	seen := make(map[LeadStage]bool)
	for _, stage := range PipelineStageOrder {
		assert.False(t, seen[stage], "stage %q appears twice in display order", stage)
		seen[stage] = true
	}
	assert.Len(t, PipelineStageOrder, 7)
	assert.Equal(t, StageNewLead, PipelineStageOrder[0])
}
