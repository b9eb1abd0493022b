package memory

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/types"
)

const claimEntity = "Claim"

type claimRepository struct {
	store *Store
}

func NewClaimRepository(store *Store) claim.Repository {
	return &claimRepository{store: store}
}

// checkReferences mirrors the foreign keys of the claims table. Soft deleted
// rows do not count as present.
func (r *claimRepository) checkReferences(c *claim.Claim) error {
	if x, ok := r.store.Claimants.Get(c.ClaimantID); !ok || x.IsDeleted {
		return missingReference(claimEntity, "claims_claimant_id_fkey")
	}
	if x, ok := r.store.Policies.Get(c.PolicyID); !ok || x.IsDeleted {
		return missingReference(claimEntity, "claims_policy_id_fkey")
	}
	if x, ok := r.store.ClaimStatuses.Get(c.StatusID); !ok || x.IsDeleted {
		return missingReference(claimEntity, "claims_status_id_fkey")
	}
	return nil
}

func (r *claimRepository) Create(ctx context.Context, c *claim.Claim) error {
	if c.ID == "" {
		c.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIM)
	}
	c.EnsureCreated(ctx)

	if err := r.checkReferences(c); err != nil {
		return err
	}
	r.store.Claims.Put(ctx, c.ID, *c)
	return nil
}

func (r *claimRepository) Get(ctx context.Context, id string, includeDeleted bool) (*claim.Claim, error) {
	c, ok := r.store.Claims.Get(id)
	if !ok || (c.IsDeleted && !includeDeleted) {
		return nil, notFound(claimEntity, id)
	}
	return c, nil
}

func (r *claimRepository) match(filter *types.ClaimFilter) FilterFunc[claim.Claim] {
	return func(c *claim.Claim) bool {
		if c.IsDeleted && !filter.GetIncludeDeleted() {
			return false
		}
		if filter.ClaimantID != "" && c.ClaimantID != filter.ClaimantID {
			return false
		}
		if filter.PolicyID != "" && c.PolicyID != filter.PolicyID {
			return false
		}
		if filter.StatusID != "" && c.StatusID != filter.StatusID {
			return false
		}
		return true
	}
}

func (r *claimRepository) List(ctx context.Context, filter *types.ClaimFilter) ([]*claim.Claim, error) {
	if filter == nil {
		filter = types.NewClaimFilter()
	}
	return r.store.Claims.List(r.match(filter), func(a, b *claim.Claim) bool {
		return newestFirst(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano(), a.ID, b.ID)
	}, filter.QueryFilter), nil
}

func (r *claimRepository) Count(ctx context.Context, filter *types.ClaimFilter) (int, error) {
	if filter == nil {
		filter = types.NewClaimFilter()
	}
	return r.store.Claims.Count(r.match(filter)), nil
}

func (r *claimRepository) Update(ctx context.Context, c *claim.Claim) error {
	existing, ok := r.store.Claims.Get(c.ID)
	if !ok || existing.IsDeleted {
		return notFound(claimEntity, c.ID)
	}
	if err := r.checkReferences(c); err != nil {
		return err
	}
	c.Touch(ctx)
	c.CreatedAt, c.CreatedBy, c.IsDeleted = existing.CreatedAt, existing.CreatedBy, false
	r.store.Claims.Put(ctx, c.ID, *c)
	return nil
}

func (r *claimRepository) Delete(ctx context.Context, id string) error {
	c, ok := r.store.Claims.Get(id)
	if !ok || c.IsDeleted {
		return notFound(claimEntity, id)
	}
	c.Touch(ctx)
	c.IsDeleted = true
	r.store.Claims.Put(ctx, id, *c)
	return nil
}
