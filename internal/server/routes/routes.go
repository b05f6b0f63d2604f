package routes

import (
	"net/http"

	"github.com/osa911/contactform/internal/api/dto/common"
	"github.com/osa911/contactform/internal/api/middleware"
	"github.com/osa911/contactform/internal/config"
	"github.com/osa911/contactform/internal/logging"
	coremiddleware "github.com/osa911/contactform/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all routes
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	SetupInfoRoutes(router, h.Info)
	SetupHealthRoutes(router, h.Health)
	SetupContactRoutes(router, h.Contact, m)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Not found"))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.NewErrorResponse("Method not allowed"))
	})
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(coremiddleware.Recovery(logger))
	router.Use(coremiddleware.RequestID())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.RequestLogger(logger, cfg.LogRequests))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
}
