package handlers

import (
	"net/http"

	"github.com/osa911/contactform/internal/ratelimit"
	"github.com/osa911/contactform/internal/version"

	"github.com/gin-gonic/gin"
)

// InfoResponse describes the API on GET /
type InfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type InfoHandler struct {
	body InfoResponse
}

func NewInfoHandler(policy ratelimit.Policy) *InfoHandler {
	return &InfoHandler{
		body: InfoResponse{
			Message: "Contact Form API is running",
			Version: version.Version,
			Endpoints: map[string]string{
				"POST /contact": "Submit a contact form (Rate limit: " + policy.String() + " per IP)",
				"GET /health":   "Health check",
			},
		},
	}
}

func (h *InfoHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, h.body)
}
