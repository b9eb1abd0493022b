package claim

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/types"
)

// Repository defines the interface for claim data access
type Repository interface {
	Create(ctx context.Context, claim *Claim) error
	Get(ctx context.Context, id string, includeDeleted bool) (*Claim, error)
	List(ctx context.Context, filter *types.ClaimFilter) ([]*Claim, error)
	// Count honours ClaimantID, PolicyID and StatusID, which the restrict checks rely on
	Count(ctx context.Context, filter *types.ClaimFilter) (int, error)
	Update(ctx context.Context, claim *Claim) error
	Delete(ctx context.Context, id string) error
}
