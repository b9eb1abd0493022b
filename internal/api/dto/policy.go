package dto

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/policy"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/claimsdesk/claims-service/internal/validator"
)

type CreatePolicyRequest struct {
	ClaimantID   string     `json:"claimantId" validate:"required"`
	PolicyNumber string     `json:"policyNumber" validate:"required,max=50"`
	PolicyType   string     `json:"policyType" validate:"required,max=50"`
	StartDate    types.Date `json:"startDate" validate:"required" swaggertype:"string" example:"2024-01-01"`
	EndDate      types.Date `json:"endDate" validate:"required" swaggertype:"string" example:"2025-01-01"`
	Description  string     `json:"description,omitempty" validate:"omitempty,max=500"`
}

func (r *CreatePolicyRequest) Validate() error {
	return validateWithDateRange(r, r.StartDate, r.EndDate, "endDate")
}

func (r *CreatePolicyRequest) ToPolicy(ctx context.Context) *policy.Policy {
	return &policy.Policy{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY),
		ClaimantID:     r.ClaimantID,
		PolicyNumber:   r.PolicyNumber,
		PolicyType:     r.PolicyType,
		EffectiveDate:  r.StartDate,
		ExpirationDate: r.EndDate,
		Description:    r.Description,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// UpdatePolicyRequest replaces every mutable field of a policy
type UpdatePolicyRequest struct {
	// PolicyID is optional; when set it must match the route
	PolicyID     string     `json:"policyId,omitempty"`
	ClaimantID   string     `json:"claimantId" validate:"required"`
	PolicyNumber string     `json:"policyNumber" validate:"required,max=50"`
	PolicyType   string     `json:"policyType" validate:"required,max=50"`
	StartDate    types.Date `json:"startDate" validate:"required" swaggertype:"string" example:"2024-01-01"`
	EndDate      types.Date `json:"endDate" validate:"required" swaggertype:"string" example:"2025-01-01"`
	Description  string     `json:"description,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdatePolicyRequest) Validate() error {
	return validateWithDateRange(r, r.StartDate, r.EndDate, "endDate")
}

func (r *UpdatePolicyRequest) ApplyTo(p *policy.Policy) {
	p.ClaimantID = r.ClaimantID
	p.PolicyNumber = r.PolicyNumber
	p.PolicyType = r.PolicyType
	p.EffectiveDate = r.StartDate
	p.ExpirationDate = r.EndDate
	p.Description = r.Description
}

type PolicyResponse struct {
	PolicyID        string            `json:"policyId"`
	ClaimantID      string            `json:"claimantId"`
	PolicyNumber    string            `json:"policyNumber"`
	PolicyType      string            `json:"policyType"`
	StartDate       types.Date        `json:"startDate" swaggertype:"string"`
	EndDate         types.Date        `json:"endDate" swaggertype:"string"`
	Description     string            `json:"description,omitempty"`
	IsDeleted       bool              `json:"isDeleted"`
	ClaimantDetails *ClaimantResponse `json:"claimantDetails,omitempty"`
}

func NewPolicyResponse(p *policy.Policy) *PolicyResponse {
	if p == nil {
		return nil
	}
	return &PolicyResponse{
		PolicyID:     p.ID,
		ClaimantID:   p.ClaimantID,
		PolicyNumber: p.PolicyNumber,
		PolicyType:   p.PolicyType,
		StartDate:    p.EffectiveDate,
		EndDate:      p.ExpirationDate,
		Description:  p.Description,
		IsDeleted:    p.IsDeleted,
	}
}

type ListPoliciesResponse = types.ListResponse[*PolicyResponse]

// validateWithDateRange runs the tag rules and then checks that end is not
// before start, reporting every violation together
func validateWithDateRange(req interface{}, start, end types.Date, endField string) error {
	result := validator.Validate(req)
	errs := result.Errors
	if !start.IsZero() && !end.IsZero() && start.IsAfter(end) {
		errs = append(errs, validator.FieldError{
			Field:   endField,
			Message: "Policy end date must not be before the start date.",
		})
	}
	if len(errs) == 0 {
		return nil
	}
	return validator.NewValidationError(errs...)
}
