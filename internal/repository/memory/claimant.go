package memory

import (
	"context"
	"strings"

	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	"github.com/claimsdesk/claims-service/internal/types"
)

const claimantEntity = "Claimant"

type claimantRepository struct {
	store *Store
}

func NewClaimantRepository(store *Store) claimant.Repository {
	return &claimantRepository{store: store}
}

func (r *claimantRepository) Create(ctx context.Context, c *claimant.Claimant) error {
	if c.ID == "" {
		c.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIMANT)
	}
	c.EnsureCreated(ctx)

	if _, exists := r.store.Claimants.Get(c.ID); exists {
		return alreadyExists(claimantEntity, "claimants_pkey")
	}
	r.store.Claimants.Put(ctx, c.ID, *c)
	return nil
}

func (r *claimantRepository) Get(ctx context.Context, id string, includeDeleted bool) (*claimant.Claimant, error) {
	c, ok := r.store.Claimants.Get(id)
	if !ok || (c.IsDeleted && !includeDeleted) {
		return nil, notFound(claimantEntity, id)
	}
	return c, nil
}

func (r *claimantRepository) match(filter *types.ClaimantFilter) FilterFunc[claimant.Claimant] {
	return func(c *claimant.Claimant) bool {
		if c.IsDeleted && !filter.GetIncludeDeleted() {
			return false
		}
		if filter.Email != "" && !strings.EqualFold(c.Email, filter.Email) {
			return false
		}
		return true
	}
}

func (r *claimantRepository) List(ctx context.Context, filter *types.ClaimantFilter) ([]*claimant.Claimant, error) {
	if filter == nil {
		filter = types.NewClaimantFilter()
	}
	return r.store.Claimants.List(r.match(filter), func(a, b *claimant.Claimant) bool {
		return newestFirst(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano(), a.ID, b.ID)
	}, filter.QueryFilter), nil
}

func (r *claimantRepository) Count(ctx context.Context, filter *types.ClaimantFilter) (int, error) {
	if filter == nil {
		filter = types.NewClaimantFilter()
	}
	return r.store.Claimants.Count(r.match(filter)), nil
}

func (r *claimantRepository) Update(ctx context.Context, c *claimant.Claimant) error {
	existing, ok := r.store.Claimants.Get(c.ID)
	if !ok || existing.IsDeleted {
		return notFound(claimantEntity, c.ID)
	}
	c.Touch(ctx)
	c.CreatedAt, c.CreatedBy, c.IsDeleted = existing.CreatedAt, existing.CreatedBy, false
	r.store.Claimants.Put(ctx, c.ID, *c)
	return nil
}

func (r *claimantRepository) Delete(ctx context.Context, id string) error {
	c, ok := r.store.Claimants.Get(id)
	if !ok || c.IsDeleted {
		return notFound(claimantEntity, id)
	}
	c.Touch(ctx)
	c.IsDeleted = true
	r.store.Claimants.Put(ctx, id, *c)
	return nil
}
