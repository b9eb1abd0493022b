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

type PolicyHandler struct {
	service service.PolicyService
	log     *logger.Logger
}

func NewPolicyHandler(service service.PolicyService, log *logger.Logger) *PolicyHandler {
	return &PolicyHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a policy
// @Tags Policies
// @Accept json
// @Produce json
// @Param policy body dto.CreatePolicyRequest true "Policy"
// @Success 201 {object} dto.Envelope{data=dto.PolicyResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope
// @Router /policy [post]
func (h *PolicyHandler) CreatePolicy(c *gin.Context) {
	var req dto.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePolicy(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessEnvelope("Policy added successfully", resp))
}

// @Summary Get a policy
// @Tags Policies
// @Produce json
// @Param id path string true "Policy ID"
// @Param includeDeleted query bool false "Include soft deleted policies"
// @Success 200 {object} dto.Envelope{data=dto.PolicyResponse}
// @Failure 404 {object} dto.Envelope
// @Router /policy/basic/{id} [get]
func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	includeDeleted, err := includeDeletedParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetPolicy(c.Request.Context(), c.Param("id"), includeDeleted)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Policy fetched successfully", resp))
}

// @Summary Get a policy with its claimant
// @Tags Policies
// @Produce json
// @Param id path string true "Policy ID"
// @Param includeDeleted query bool false "Include soft deleted policies"
// @Success 200 {object} dto.Envelope{data=dto.PolicyResponse}
// @Failure 404 {object} dto.Envelope
// @Router /policy/details/{id} [get]
func (h *PolicyHandler) GetPolicyDetails(c *gin.Context) {
	includeDeleted, err := includeDeletedParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetPolicyDetails(c.Request.Context(), c.Param("id"), includeDeleted)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Policy with claimant details fetched successfully", resp))
}

// @Summary List policies
// @Tags Policies
// @Produce json
// @Param filter query types.PolicyFilter false "Filter"
// @Success 200 {object} dto.Envelope{data=dto.ListPoliciesResponse}
// @Failure 400 {object} dto.Envelope
// @Router /policy [get]
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	filter := types.NewPolicyFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListPolicies(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Policies fetched successfully", resp))
}

// @Summary Update a policy
// @Tags Policies
// @Accept json
// @Produce json
// @Param id path string true "Policy ID"
// @Param policy body dto.UpdatePolicyRequest true "Policy"
// @Success 200 {object} dto.Envelope{data=dto.PolicyResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope
// @Router /policy/{id} [put]
func (h *PolicyHandler) UpdatePolicy(c *gin.Context) {
	var req dto.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdatePolicy(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Policy updated successfully", resp))
}

// @Summary Delete a policy
// @Tags Policies
// @Produce json
// @Param id path string true "Policy ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope
// @Router /policy/{id} [delete]
func (h *PolicyHandler) DeletePolicy(c *gin.Context) {
	if err := h.service.DeletePolicy(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope("Policy deleted successfully", nil))
}
