package routes

import (
	"github.com/osa911/contactform/internal/api/handlers"
	"github.com/osa911/contactform/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
	Info    *handlers.InfoHandler
}

// Middleware contains the route-level middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
	RateLimit  gin.HandlerFunc
	BodyLimit  gin.HandlerFunc
}
