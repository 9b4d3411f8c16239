package middleware

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feedbacklens/feedback-backend/errors"
	"github.com/feedbacklens/feedback-backend/logger"
)

// ErrorHandler translates errors attached via c.Error into JSON responses.
// AppError carries its own status and, for validation failures, the full list
// of field violations. Anything else becomes a sanitized 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

			if appError.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(appError.RetryAfter))
			}

			response := gin.H{
				"success": false,
				"type":    string(appError.Type),
				"message": appError.Message,
			}
			if len(appError.Fields) > 0 {
				response["errors"] = appError.Fields
			}
			// Detail is only exposed for client-side errors; storage detail
			// stays in the logs.
			if appError.Detail != "" && appError.Type == errors.ValidationError {
				response["detail"] = appError.Detail
			}

			c.JSON(statusCode, response)
			return
		}

		// Gin binding errors (malformed JSON bodies and the like)
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, 400, "Request binding error")
			c.JSON(400, gin.H{
				"success": false,
				"type":    string(errors.ValidationError),
				"message": "Failed to parse request body",
			})
			return
		}

		logger.LogHTTPError(c, err, 500, "Unexpected server error")
		c.JSON(500, gin.H{
			"success": false,
			"type":    string(errors.ServerError),
			"message": "Something went wrong. Please try again later.",
		})
	}
}
