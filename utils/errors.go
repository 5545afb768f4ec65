package utils

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Machine-readable error codes returned alongside every failure.
const (
	CodeNotFound       = "RESOURCE_NOT_FOUND"
	CodeInvalidStage   = "INVALID_STAGE"
	CodeMissingField   = "MISSING_FIELD"
	CodeSlotTaken      = "SLOT_TAKEN"
	CodeBadRequest     = "BAD_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeConflict       = "CONFLICT"
	CodeStorageFailure = "STORAGE_FAILURE"
)

// ApiError is the API's error type: an HTTP status, a human-readable
// message, and a machine-readable code.
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	return e.Message
}

// NewApiError builds an ApiError.
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateNotFoundError reports a missing resource.
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+" not found", http.StatusNotFound, CodeNotFound)
}

// CreateInvalidStageError reports a stage outside the canonical set or a
// transition out of a terminal stage.
func CreateInvalidStageError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, CodeInvalidStage)
}

// CreateMissingFieldError reports absent required fields.
func CreateMissingFieldError(fields []string) *ApiError {
	return NewApiError(
		"missing required fields: "+strings.Join(fields, ", "),
		http.StatusBadRequest,
		CodeMissingField,
	)
}

// CreateSlotTakenError reports a double-booked appointment slot.
func CreateSlotTakenError(date, timeSlot string) *ApiError {
	return NewApiError(
		fmt.Sprintf("slot %s %s already has a scheduled appointment", date, timeSlot),
		http.StatusConflict,
		CodeSlotTaken,
	)
}

// CreateBadRequestError reports malformed caller input.
func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, CodeBadRequest)
}

// CreateUnauthorizedError reports a missing or invalid credential.
func CreateUnauthorizedError() *ApiError {
	return NewApiError("unauthorized", http.StatusUnauthorized, CodeUnauthorized)
}

// CreateForbiddenError reports insufficient permissions.
func CreateForbiddenError() *ApiError {
	return NewApiError("forbidden", http.StatusForbidden, CodeForbidden)
}

// CreateConflictError reports a uniqueness violation other than slots.
func CreateConflictError(message string) *ApiError {
	return NewApiError(message, http.StatusConflict, CodeConflict)
}

// HandleError logs err and writes the matching JSON error response.
// Storage failures are never masked as success.
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}

	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, err.Error())

	if apiErr, ok := err.(*ApiError); ok {
		response := gin.H{"success": false, "error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		c.JSON(apiErr.StatusCode, response)
		return
	}

	// Anything unclassified is a storage/internal failure.
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
		"code":    CodeStorageFailure,
	})
}

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse writes an ad-hoc error envelope.
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
