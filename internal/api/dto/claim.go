package dto

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	"github.com/claimsdesk/claims-service/internal/domain/notification"
	"github.com/claimsdesk/claims-service/internal/domain/policy"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/shopspring/decimal"
)

// SubmitClaimRequest files a claim together with a new claimant and policy
type SubmitClaimRequest struct {
	Description      string          `json:"description" validate:"required,min=10,max=500"`
	Amount           decimal.Decimal `json:"amount" validate:"decimalgt=0,decimallte=9999999999999999.99,decimalscale=2" swaggertype:"string" example:"1500.00"`
	DateOfIncident   types.Date      `json:"dateOfIncident" validate:"required,notfuture" swaggertype:"string" example:"2024-05-01"`
	IncidentLocation string          `json:"incidentLocation" validate:"required,max=250"`
	PolicyNumber     string          `json:"policyNumber" validate:"required,max=50"`

	// Optional policy terms. Type defaults to Standard, start to the
	// incident date and end to one year after start.
	PolicyType        string     `json:"policyType,omitempty" validate:"omitempty,max=50"`
	PolicyStartDate   types.Date `json:"policyStartDate,omitempty" swaggertype:"string"`
	PolicyEndDate     types.Date `json:"policyEndDate,omitempty" swaggertype:"string"`
	PolicyDescription string     `json:"policyDescription,omitempty" validate:"omitempty,max=500"`

	Claimant  *ClaimantRequest  `json:"claimant" validate:"required"`
	Documents []DocumentRequest `json:"documents,omitempty" validate:"omitempty,dive"`
}

// Validate reports every violated rule at once
func (r *SubmitClaimRequest) Validate() error {
	return validateWithDateRange(r, r.PolicyStartDate, r.PolicyEndDate, "policyEndDate")
}

// ToPolicy builds the policy for claimantID, filling in the default terms
func (r *SubmitClaimRequest) ToPolicy(ctx context.Context, claimantID string) *policy.Policy {
	policyType := r.PolicyType
	if policyType == "" {
		policyType = types.DefaultPolicyType
	}
	start := r.PolicyStartDate
	if start.IsZero() {
		start = r.DateOfIncident
	}
	end := r.PolicyEndDate
	if end.IsZero() {
		end = start.AddYears(types.DefaultPolicyTermYears)
	}

	return &policy.Policy{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY),
		ClaimantID:     claimantID,
		PolicyNumber:   r.PolicyNumber,
		PolicyType:     policyType,
		EffectiveDate:  start,
		ExpirationDate: end,
		Description:    r.PolicyDescription,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

func (r *SubmitClaimRequest) ToClaim(ctx context.Context, claimantID, policyID, statusID string) *claim.Claim {
	return &claim.Claim{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIM),
		Description:      r.Description,
		Amount:           r.Amount,
		DateOfIncident:   r.DateOfIncident,
		IncidentLocation: r.IncidentLocation,
		ClaimantID:       claimantID,
		PolicyID:         policyID,
		StatusID:         statusID,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
}

// ClaimResponse is the caller's view of a claim, denormalized with its
// claimant, policy and status
type ClaimResponse struct {
	ClaimID            string                   `json:"claimId"`
	Description        string                   `json:"description"`
	Amount             types.Amount             `json:"amount" swaggertype:"string" example:"1500.00"`
	DateOfIncident     types.Date               `json:"dateOfIncident" swaggertype:"string"`
	IncidentLocation   string                   `json:"incidentLocation"`
	Status             string                   `json:"status" example:"Submitted"`
	ClaimantID         string                   `json:"claimantId"`
	ClaimantName       string                   `json:"claimantName"`
	ClaimantEmail      string                   `json:"claimantEmail"`
	PolicyID           string                   `json:"policyId"`
	PolicyNumber       string                   `json:"policyNumber"`
	NotificationStatus types.NotificationStatus `json:"notificationStatus" example:"published"`
	IsDeleted          bool                     `json:"isDeleted"`
	Documents          []*DocumentResponse      `json:"documents,omitempty"`
}

func NewClaimResponse(
	c *claim.Claim,
	cl *claimant.Claimant,
	p *policy.Policy,
	status *claimstatus.ClaimStatus,
	notificationStatus types.NotificationStatus,
) *ClaimResponse {
	resp := &ClaimResponse{
		ClaimID:            c.ID,
		Description:        c.Description,
		Amount:             types.NewAmount(c.Amount),
		DateOfIncident:     c.DateOfIncident,
		IncidentLocation:   c.IncidentLocation,
		ClaimantID:         c.ClaimantID,
		PolicyID:           c.PolicyID,
		NotificationStatus: notificationStatus,
		IsDeleted:          c.IsDeleted,
	}
	if cl != nil {
		resp.ClaimantName = cl.FullName()
		resp.ClaimantEmail = cl.Email
	}
	if p != nil {
		resp.PolicyNumber = p.PolicyNumber
	}
	if status != nil {
		resp.Status = status.StatusName
	}
	return resp
}

type ListClaimsResponse = types.ListResponse[*ClaimResponse]

// NotificationResponse describes the delivery state of a claim's event
type NotificationResponse struct {
	NotificationID string                  `json:"notificationId"`
	ClaimID        string                  `json:"claimId"`
	Destination    string                  `json:"destination"`
	State          types.NotificationState `json:"state" example:"sent"`
	Attempts       int                     `json:"attempts"`
	LastError      string                  `json:"lastError,omitempty"`
}

func NewNotificationResponse(n *notification.Notification) *NotificationResponse {
	return &NotificationResponse{
		NotificationID: n.ID,
		ClaimID:        n.ClaimID,
		Destination:    n.Destination,
		State:          n.State,
		Attempts:       n.Attempts,
		LastError:      n.LastError,
	}
}

// RelayResult summarizes one pass of the outbox relay
type RelayResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}
