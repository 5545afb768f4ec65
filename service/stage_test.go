package service

import (
	"testing"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransitionAllowsAnyMoveFromNonTerminal(t *testing.T) {
	froms := []models.LeadStage{
		models.StageNewLead,
		models.StageContacted,
		models.StageWebsiteViewed,
		models.StageAppointmentScheduled,
		models.StageUnsuccessfulCall,
	}
	for _, from := range froms {
		for _, to := range models.PipelineStageOrder {
			assert.NoError(t, ValidateTransition(from, to), "%s -> %s should be allowed", from, to)
		}
	}
}

func TestValidateTransitionSameStageIsAllowed(t *testing.T) {
	// Same-stage moves succeed; the caller still logs them.
	assert.NoError(t, ValidateTransition(models.StageContacted, models.StageContacted))
	assert.NoError(t, ValidateTransition(models.StageSaleClosed, models.StageSaleClosed))
}

func TestValidateTransitionRejectsUnknownStage(t *testing.T) {
	err := ValidateTransition(models.StageNewLead, models.LeadStage("qualified"))
	require.Error(t, err)

	apiErr, ok := err.(*utils.ApiError)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidStage, apiErr.ErrorCode)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestValidateTransitionRejectsLeavingTerminalStage(t *testing.T) {
	for _, from := range []models.LeadStage{models.StageSaleClosed, models.StageNotInterested} {
		err := ValidateTransition(from, models.StageContacted)
		require.Error(t, err, "leaving %s should fail", from)

		apiErr, ok := err.(*utils.ApiError)
		require.True(t, ok)
		assert.Equal(t, utils.CodeInvalidStage, apiErr.ErrorCode)
	}
}

func TestNewSessionIDIsUnique(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
