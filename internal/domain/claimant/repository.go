package claimant

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/types"
)

// Repository defines the interface for claimant data access
type Repository interface {
	Create(ctx context.Context, claimant *Claimant) error
	Get(ctx context.Context, id string, includeDeleted bool) (*Claimant, error)
	List(ctx context.Context, filter *types.ClaimantFilter) ([]*Claimant, error)
	Count(ctx context.Context, filter *types.ClaimantFilter) (int, error)
	Update(ctx context.Context, claimant *Claimant) error
	Delete(ctx context.Context, id string) error
}
