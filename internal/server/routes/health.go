package routes

import (
	"github.com/osa911/contactform/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router gin.IRoutes, health *handlers.HealthHandler) {
	router.GET("/health", health.Check)
}

// SetupInfoRoutes configures the informational root endpoint
func SetupInfoRoutes(router gin.IRoutes, info *handlers.InfoHandler) {
	router.GET("/", info.Root)
}
