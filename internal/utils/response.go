package utils

import (
	"net/http"

	"github.com/osa911/contactform/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with a message and data
func HandleSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(message, data))
}

// HandleStatus sends a bare status payload
func HandleStatus(c *gin.Context, status string) {
	c.JSON(http.StatusOK, common.StatusResponse{Status: status})
}
