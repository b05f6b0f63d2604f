package handlers

import (
	"github.com/osa911/contactform/internal/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness. It has no dependencies so it answers even
// when the rate limiter or the email provider are unhappy.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleStatus(c, "ok")
}
