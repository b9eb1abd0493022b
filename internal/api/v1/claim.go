package v1

import (
	"net/http"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/service"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/gin-gonic/gin"
)

const (
	msgClaimSubmitted         = "Claim submitted successfully"
	msgClaimSubmittedDegraded = "Claim submitted; notification delivery pending"
	msgClaimsFetched          = "Claims fetched successfully"
	msgClaimFetched           = "Claim fetched successfully"
	msgClaimDeleted           = "Claim deleted successfully"
)

type ClaimHandler struct {
	service      service.ClaimService
	notification service.NotificationService
	log          *logger.Logger
}

func NewClaimHandler(
	service service.ClaimService,
	notification service.NotificationService,
	log *logger.Logger,
) *ClaimHandler {
	return &ClaimHandler{
		service:      service,
		notification: notification,
		log:          log,
	}
}

// @Summary Submit a claim
// @Description Validates the request, stores the claimant, policy, claim and documents in one transaction, then publishes a claim.submitted event
// @Tags Claims
// @Accept json
// @Produce json
// @Param claim body dto.SubmitClaimRequest true "Claim"
// @Success 201 {object} dto.Envelope{data=dto.ClaimResponse}
// @Success 202 {object} dto.Envelope{data=dto.ClaimResponse} "Stored, event delivery pending"
// @Failure 400 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Router /claims [post]
func (h *ClaimHandler) SubmitClaim(c *gin.Context) {
	var req dto.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SubmitClaim(c.Request.Context(), req)
	if err != nil {
		// the claim is stored; only the event is outstanding
		if resp != nil && ierr.IsNotification(err) {
			h.log.WithContext(c.Request.Context()).Warnw("claim stored without notification",
				"claim_id", resp.ClaimID,
				"error", err,
			)
			c.JSON(http.StatusAccepted, dto.NewSuccessEnvelope(msgClaimSubmittedDegraded, resp))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessEnvelope(msgClaimSubmitted, resp))
}

// @Summary List claims
// @Tags Claims
// @Produce json
// @Param filter query types.ClaimFilter false "Filter"
// @Success 200 {object} dto.Envelope{data=dto.ListClaimsResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Router /claims [get]
func (h *ClaimHandler) ListClaims(c *gin.Context) {
	filter := types.NewClaimFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListClaims(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope(msgClaimsFetched, resp))
}

// @Summary Get a claim
// @Tags Claims
// @Produce json
// @Param id path string true "Claim ID"
// @Param includeDeleted query bool false "Include soft deleted claims"
// @Success 200 {object} dto.Envelope{data=dto.ClaimResponse}
// @Failure 404 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Router /claims/{id} [get]
func (h *ClaimHandler) GetClaim(c *gin.Context) {
	includeDeleted, err := includeDeletedParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetClaim(c.Request.Context(), c.Param("id"), includeDeleted)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope(msgClaimFetched, resp))
}

// @Summary Delete a claim
// @Description Soft deletes the claim together with its documents
// @Tags Claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Router /claims/{id} [delete]
func (h *ClaimHandler) DeleteClaim(c *gin.Context) {
	if err := h.service.DeleteClaim(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope(msgClaimDeleted, nil))
}

// @Summary List a claim's documents
// @Tags Claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.Envelope{data=dto.ListDocumentsResponse}
// @Failure 404 {object} dto.Envelope
// @Router /claims/{id}/documents [get]
func (h *ClaimHandler) ListDocuments(c *gin.Context) {
	resp, err := h.service.ListDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Documents fetched successfully", resp))
}

// @Summary Attach a document
// @Tags Claims
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Param document body dto.DocumentRequest true "Document"
// @Success 201 {object} dto.Envelope{data=dto.DocumentResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /claims/{id}/documents [post]
func (h *ClaimHandler) AttachDocument(c *gin.Context) {
	var req dto.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AttachDocument(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessEnvelope("Document attached successfully", resp))
}

// @Summary Replay a claim's notification
// @Description Publishes the stored claim.submitted event again
// @Tags Claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.Envelope{data=dto.NotificationResponse}
// @Failure 404 {object} dto.Envelope
// @Failure 502 {object} dto.Envelope
// @Router /claims/{id}/notifications/replay [post]
func (h *ClaimHandler) ReplayNotification(c *gin.Context) {
	resp, err := h.notification.ReplayClaimNotification(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Notification replayed successfully", resp))
}
