package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/osa911/contactform/internal/api/constants"
	"github.com/osa911/contactform/internal/api/dto/common"
	"github.com/osa911/contactform/internal/api/dto/v1/contact"
	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/service"
	"github.com/osa911/contactform/internal/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	dispatcher service.EmailDispatcher
	logger     *logging.Logger
	timeout    time.Duration
}

// NewContactHandler creates the contact handler. timeout bounds each
// provider call.
func NewContactHandler(dispatcher service.EmailDispatcher, logger *logging.Logger, timeout time.Duration) *ContactHandler {
	return &ContactHandler{
		dispatcher: dispatcher,
		logger:     logger,
		timeout:    timeout,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, h.logger, errors.New("contact data not found in context"), http.StatusInternalServerError, common.ErrMsgInternalServer)
		return
	}

	req, ok := contactData.(*contact.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, h.logger, errors.New("invalid contact data format"), http.StatusInternalServerError, common.ErrMsgInternalServer)
		return
	}

	msg := &service.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Info: &service.ContactMessageInfo{
			IPAddress: utils.ClientKey(c),
			UserAgent: c.Request.UserAgent(),
			Referrer:  c.Request.Referer(),
			RequestID: c.GetString(constants.ContextKeyRequestID),
		},
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	messageID, err := h.dispatcher.SendContactEmail(ctx, msg)
	if err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, contact.DispatchFailedMessage)
		return
	}

	h.logger.Info("Contact message from %s sent (message id %s)", msg.Info.IPAddress, messageID)

	utils.HandleSuccess(c, contact.SuccessMessage, contact.ContactData{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
	})
}
