package utils

import (
	"github.com/osa911/contactform/internal/api/constants"
	"github.com/osa911/contactform/internal/api/dto/common"
	"github.com/osa911/contactform/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs err for operators and answers with a generic message.
// The underlying error never reaches the client.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, message string) {
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		ClientKey(c),
		status,
		message+" ["+c.GetString(constants.ContextKeyRequestID)+"]",
		err,
	)

	c.AbortWithStatusJSON(status, common.NewErrorResponse(message))
}
