package dto

import (
	"context"
	"strings"

	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/claimsdesk/claims-service/internal/validator"
)

type CreateClaimStatusRequest struct {
	StatusName string `json:"statusName" validate:"required,max=100"`
}

func (r *CreateClaimStatusRequest) Validate() error {
	r.StatusName = strings.TrimSpace(r.StatusName)
	return validator.ValidateRequest(r)
}

func (r *CreateClaimStatusRequest) ToClaimStatus(ctx context.Context) *claimstatus.ClaimStatus {
	return &claimstatus.ClaimStatus{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIM_STATUS),
		StatusName: r.StatusName,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

type ClaimStatusResponse struct {
	StatusID   string `json:"statusId"`
	StatusName string `json:"statusName"`
}

func NewClaimStatusResponse(s *claimstatus.ClaimStatus) *ClaimStatusResponse {
	return &ClaimStatusResponse{
		StatusID:   s.ID,
		StatusName: s.StatusName,
	}
}

type ListClaimStatusesResponse = types.ListResponse[*ClaimStatusResponse]
