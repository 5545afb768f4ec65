package utils

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	err := CreateNotFoundError("lead")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, CodeNotFound, err.ErrorCode)
	assert.Equal(t, "lead not found", err.Error())

	err = CreateInvalidStageError(`unknown stage "qualified"`)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, CodeInvalidStage, err.ErrorCode)

	err = CreateMissingFieldError([]string{"date", "time"})
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, CodeMissingField, err.ErrorCode)
	assert.Equal(t, "missing required fields: date, time", err.Error())

	err = CreateSlotTakenError("2025-03-01", "10:00")
	assert.Equal(t, http.StatusConflict, err.StatusCode)
	assert.Equal(t, CodeSlotTaken, err.ErrorCode)
	assert.Contains(t, err.Error(), "2025-03-01 10:00")
}
