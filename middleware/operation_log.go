package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/repository"
	"github.com/coolairsites/pipeline-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// loggedMethods are the HTTP methods worth an operation-log record.
var loggedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// excludedPaths are never recorded.
var excludedPaths = map[string]bool{
	"/api/health":        true,
	"/api/db-status":     true,
	"/api/auth/login":    true,
	"/api/auth/validate": true,
}

// OperationLoggerMiddleware persists every mutating API call to the
// api_operation_logs collection.
func OperationLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !shouldLogOperation(c) {
			c.Next()
			return
		}

		startTime := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		var requestBody interface{}
		if c.Request.Body != nil {
			requestBodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBodyBytes))
				if strings.Contains(c.Request.Header.Get("Content-Type"), "application/json") {
					if err := json.Unmarshal(requestBodyBytes, &requestBody); err != nil {
						requestBody = string(requestBodyBytes)
					}
				} else {
					requestBody = string(requestBodyBytes)
				}
			}
		}

		operatorID, operatorName, operatorRole := extractUserInfo(c)

		c.Next()

		responseTime := time.Since(startTime).Milliseconds()

		var errorMessage string
		if len(c.Errors) > 0 {
			errorMessage = c.Errors.String()
		}

		operationLog := models.OperationLog{
			Method:        method,
			Path:          path,
			OperatorID:    operatorID,
			OperatorName:  operatorName,
			OperatorRole:  operatorRole,
			RequestBody:   sanitizeData(requestBody),
			StatusCode:    c.Writer.Status(),
			Success:       c.Writer.Status() < http.StatusBadRequest,
			ErrorMessage:  errorMessage,
			OperationTime: startTime,
			ResponseTime:  responseTime,
			IPAddress:     getClientIP(c),
			UserAgent:     c.Request.UserAgent(),
		}

		if err := saveOperationLog(&operationLog); err != nil {
			utils.Logger.Error().Err(err).Msg("saving operation log failed")
		}
	}
}

// shouldLogOperation reports whether this request gets a record.
func shouldLogOperation(c *gin.Context) bool {
	if _, excluded := excludedPaths[c.Request.URL.Path]; excluded {
		return false
	}
	return loggedMethods[c.Request.Method]
}

// extractUserInfo pulls the operator identity from the request context or,
// failing that, straight from the bearer token.
func extractUserInfo(c *gin.Context) (string, string, string) {
	operatorID := "anonymous"
	operatorName := "anonymous"
	operatorRole := "UNKNOWN"

	readClaims := func(claims jwt.MapClaims) {
		if id, ok := claims["id"].(string); ok {
			operatorID = id
		}
		if username, ok := claims["username"].(string); ok {
			operatorName = username
		}
		if role, ok := claims["role"].(string); ok {
			operatorRole = role
		}
	}

	if userClaims, exists := c.Get("user"); exists {
		if claims, ok := userClaims.(jwt.MapClaims); ok {
			readClaims(claims)
			return operatorID, operatorName, operatorRole
		}
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if claims, err := utils.ParseToken(token); err == nil {
			readClaims(claims)
		}
	}

	return operatorID, operatorName, operatorRole
}

// sanitizeData masks credential-bearing fields before persistence.
func sanitizeData(data interface{}) interface{} {
	if data == nil {
		return nil
	}

	if m, ok := data.(map[string]interface{}); ok {
		sanitized := make(map[string]interface{})
		for k, v := range m {
			switch strings.ToLower(k) {
			case "password", "token", "authorization", "secret", "key":
				sanitized[k] = "******"
			default:
				sanitized[k] = sanitizeData(v)
			}
		}
		return sanitized
	}

	if s, ok := data.([]interface{}); ok {
		sanitized := make([]interface{}, len(s))
		for i, v := range s {
			sanitized[i] = sanitizeData(v)
		}
		return sanitized
	}

	return data
}

// getClientIP resolves the caller's address behind proxies.
func getClientIP(c *gin.Context) string {
	if ip := c.Request.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := c.Request.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// saveOperationLog persists one record.
func saveOperationLog(log *models.OperationLog) error {
	collection := repository.Collection(repository.OperationLogsCollection)
	_, err := collection.InsertOne(context.Background(), *log)
	return err
}
