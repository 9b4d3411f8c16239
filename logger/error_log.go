package logger

import (
	"github.com/gin-gonic/gin"
)

// LogHTTPError logs an HTTP error with request context so storage failures
// keep their detail server-side while responses stay sanitized.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	log := GetLogger()

	log.Errorw(message,
		"error", err,
		"status_code", statusCode,
		"request_id", c.GetString("request_id"),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"client_ip", c.ClientIP(),
	)
}
