package middleware

import (
	"net/http"

	"github.com/osa911/contactform/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps the request body size. Declared oversize bodies are
// rejected up front; undeclared ones fail when the reader hits the limit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse(common.ErrMsgBodyTooLarge))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
