package middleware

import (
	"github.com/coolairsites/pipeline-api/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors left on the context into JSON responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// A handler already wrote an error response
		if c.Writer.Status() >= 400 {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			utils.HandleError(c, err.Err)
			return
		}
	}
}
