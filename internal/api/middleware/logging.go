package middleware

import (
	"time"

	"github.com/osa911/contactform/internal/api/constants"
	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request when enabled
func RequestLogger(logger *logging.Logger, enabled bool) gin.HandlerFunc {
	// If logging is disabled, return a no-op middleware
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Start timer
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// Process request
		c.Next()

		logger.LogHTTPRequest(
			c.GetString(constants.ContextKeyRequestID),
			method,
			path,
			utils.ClientKey(c),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
