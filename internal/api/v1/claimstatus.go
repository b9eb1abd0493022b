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

type ClaimStatusHandler struct {
	service service.ClaimStatusService
	log     *logger.Logger
}

func NewClaimStatusHandler(service service.ClaimStatusService, log *logger.Logger) *ClaimStatusHandler {
	return &ClaimStatusHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a claim status
// @Tags ClaimStatuses
// @Accept json
// @Produce json
// @Param status body dto.CreateClaimStatusRequest true "Claim status"
// @Success 201 {object} dto.Envelope{data=dto.ClaimStatusResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope
// @Router /claim-statuses [post]
func (h *ClaimStatusHandler) CreateClaimStatus(c *gin.Context) {
	var req dto.CreateClaimStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClaimStatus(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessEnvelope("Claim status added successfully", resp))
}

// @Summary List claim statuses
// @Tags ClaimStatuses
// @Produce json
// @Param includeDeleted query bool false "Include soft deleted statuses"
// @Success 200 {object} dto.Envelope{data=dto.ListClaimStatusesResponse}
// @Router /claim-statuses [get]
func (h *ClaimStatusHandler) ListClaimStatuses(c *gin.Context) {
	filter := types.NewClaimStatusFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListClaimStatuses(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Claim statuses fetched successfully", resp))
}

// @Summary Delete a claim status
// @Tags ClaimStatuses
// @Produce json
// @Param id path string true "Claim status ID"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope
// @Router /claim-statuses/{id} [delete]
func (h *ClaimStatusHandler) DeleteClaimStatus(c *gin.Context) {
	if err := h.service.DeleteClaimStatus(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Claim status deleted successfully", nil))
}
