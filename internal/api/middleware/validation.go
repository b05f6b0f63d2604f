package middleware

import (
	"errors"
	"net/http"

	"github.com/osa911/contactform/internal/api/constants"
	"github.com/osa911/contactform/internal/api/dto/common"
	"github.com/osa911/contactform/internal/api/dto/v1/contact"
	"github.com/osa911/contactform/internal/api/sanitization"
	"github.com/osa911/contactform/internal/api/validation"

	"github.com/gin-gonic/gin"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validate validation.StructValidator
}

// NewValidationMiddleware creates a new validation middleware. A nil
// validator selects the default go-playground validator.
func NewValidationMiddleware(v validation.StructValidator) *ValidationMiddleware {
	if v == nil {
		v = validation.New()
	}
	return &ValidationMiddleware{
		validate: v,
	}
}

// ValidateContactRequest binds and validates a contact form submission and
// stores it in the context for the handler
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse(common.ErrMsgBodyTooLarge))
				return
			}

			c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
				common.NewValidationErrorResponse(validation.FormatValidationError(err)))
			return
		}

		req.Name = sanitization.SanitizeLine(req.Name)
		req.Email = sanitization.SanitizeEmail(req.Email)
		req.Subject = sanitization.SanitizeLine(req.Subject)
		req.Message = sanitization.SanitizeMultiline(req.Message)

		if err := m.validate.Struct(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
				common.NewValidationErrorResponse(validation.FormatValidationError(err)))
			return
		}

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}
