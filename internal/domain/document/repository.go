package document

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/types"
)

// Repository defines the interface for document data access
type Repository interface {
	Create(ctx context.Context, document *Document) error
	Get(ctx context.Context, id string, includeDeleted bool) (*Document, error)
	List(ctx context.Context, filter *types.DocumentFilter) ([]*Document, error)
	Update(ctx context.Context, document *Document) error
	Delete(ctx context.Context, id string) error
	// DeleteByClaim physically removes every document of a claim and returns how many went
	DeleteByClaim(ctx context.Context, claimID string) (int, error)
}
