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

type ClaimantHandler struct {
	service service.ClaimantService
	log     *logger.Logger
}

func NewClaimantHandler(service service.ClaimantService, log *logger.Logger) *ClaimantHandler {
	return &ClaimantHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a claimant
// @Tags Claimants
// @Accept json
// @Produce json
// @Param claimant body dto.ClaimantRequest true "Claimant"
// @Success 201 {object} dto.Envelope{data=dto.ClaimantResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Router /claimant [post]
func (h *ClaimantHandler) CreateClaimant(c *gin.Context) {
	var req dto.ClaimantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClaimant(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessEnvelope("Claimant added successfully", resp))
}

// @Summary Get a claimant
// @Tags Claimants
// @Produce json
// @Param id path string true "Claimant ID"
// @Param includeDeleted query bool false "Include soft deleted claimants"
// @Success 200 {object} dto.Envelope{data=dto.ClaimantResponse}
// @Failure 404 {object} dto.Envelope
// @Router /claimant/{id} [get]
func (h *ClaimantHandler) GetClaimant(c *gin.Context) {
	includeDeleted, err := includeDeletedParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetClaimant(c.Request.Context(), c.Param("id"), includeDeleted)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Claimant fetched successfully", resp))
}

// @Summary List claimants
// @Tags Claimants
// @Produce json
// @Param filter query types.ClaimantFilter false "Filter"
// @Success 200 {object} dto.Envelope{data=dto.ListClaimantsResponse}
// @Failure 400 {object} dto.Envelope
// @Router /claimant [get]
func (h *ClaimantHandler) ListClaimants(c *gin.Context) {
	filter := types.NewClaimantFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListClaimants(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Claimants fetched successfully", resp))
}

// @Summary Update a claimant
// @Tags Claimants
// @Accept json
// @Produce json
// @Param id path string true "Claimant ID"
// @Param claimant body dto.ClaimantRequest true "Claimant"
// @Success 200 {object} dto.Envelope{data=dto.ClaimantResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /claimant/{id} [put]
func (h *ClaimantHandler) UpdateClaimant(c *gin.Context) {
	var req dto.ClaimantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateClaimant(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Claimant updated successfully", resp))
}

// @Summary Delete a claimant
// @Tags Claimants
// @Produce json
// @Param id path string true "Claimant ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope
// @Router /claimant/{id} [delete]
func (h *ClaimantHandler) DeleteClaimant(c *gin.Context) {
	if err := h.service.DeleteClaimant(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Claimant deleted successfully", nil))
}
