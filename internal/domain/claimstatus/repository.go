package claimstatus

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/types"
)

// Repository defines the interface for claim status data access
type Repository interface {
	Create(ctx context.Context, status *ClaimStatus) error
	Get(ctx context.Context, id string, includeDeleted bool) (*ClaimStatus, error)
	// GetByName matches live statuses case-insensitively
	GetByName(ctx context.Context, name string) (*ClaimStatus, error)
	List(ctx context.Context, filter *types.ClaimStatusFilter) ([]*ClaimStatus, error)
	Update(ctx context.Context, status *ClaimStatus) error
	Delete(ctx context.Context, id string) error
}
