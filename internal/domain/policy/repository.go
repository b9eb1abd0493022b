package policy

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/types"
)

// Repository defines the interface for policy data access
type Repository interface {
	Create(ctx context.Context, policy *Policy) error
	Get(ctx context.Context, id string, includeDeleted bool) (*Policy, error)
	// GetByClaimantAndNumber returns the live policy with this number for the claimant
	GetByClaimantAndNumber(ctx context.Context, claimantID, policyNumber string) (*Policy, error)
	List(ctx context.Context, filter *types.PolicyFilter) ([]*Policy, error)
	Count(ctx context.Context, filter *types.PolicyFilter) (int, error)
	Update(ctx context.Context, policy *Policy) error
	Delete(ctx context.Context, id string) error
}
