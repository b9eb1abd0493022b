package cron

import (
	"net/http"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/service"
	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the outbox relay for external schedulers
type NotificationHandler struct {
	service service.NotificationService
	log     *logger.Logger
}

func NewNotificationHandler(service service.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

// @Summary Relay pending notifications
// @Description Runs one outbox relay pass and reports what it delivered
// @Tags Cron
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.RelayResult}
// @Failure 500 {object} dto.Envelope
// @Router /cron/notifications/relay [post]
func (h *NotificationHandler) RelayPending(c *gin.Context) {
	result, err := h.service.RelayPending(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	h.log.WithContext(c.Request.Context()).Infow("outbox relay pass finished",
		"processed", result.Processed,
		"sent", result.Sent,
		"failed", result.Failed,
	)
	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Notifications relayed", result))
}
