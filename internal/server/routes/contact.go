package routes

import (
	"github.com/osa911/contactform/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes.
// Rate limiting runs first so rejected clients never reach the body cap,
// validation or dispatch.
func SetupContactRoutes(router gin.IRoutes, contact *handlers.ContactHandler, m *Middleware) {
	router.POST("/contact",
		m.RateLimit,
		m.BodyLimit,
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)
}
