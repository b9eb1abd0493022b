package memory

import (
	"context"
	"strings"

	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	"github.com/claimsdesk/claims-service/internal/types"
)

const claimStatusEntity = "Claim status"

type claimStatusRepository struct {
	store *Store
}

func NewClaimStatusRepository(store *Store) claimstatus.Repository {
	return &claimStatusRepository{store: store}
}

func (r *claimStatusRepository) Create(ctx context.Context, s *claimstatus.ClaimStatus) error {
	if s.ID == "" {
		s.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIM_STATUS)
	}
	s.EnsureCreated(ctx)

	if _, dup := r.store.ClaimStatuses.Find(func(o *claimstatus.ClaimStatus) bool {
		return !o.IsDeleted && o.StatusName == s.StatusName
	}); dup {
		return alreadyExists(claimStatusEntity, "uq_claim_statuses_name")
	}
	r.store.ClaimStatuses.Put(ctx, s.ID, *s)
	return nil
}

func (r *claimStatusRepository) Get(ctx context.Context, id string, includeDeleted bool) (*claimstatus.ClaimStatus, error) {
	s, ok := r.store.ClaimStatuses.Get(id)
	if !ok || (s.IsDeleted && !includeDeleted) {
		return nil, notFound(claimStatusEntity, id)
	}
	return s, nil
}

func (r *claimStatusRepository) GetByName(ctx context.Context, name string) (*claimstatus.ClaimStatus, error) {
	s, ok := r.store.ClaimStatuses.Find(func(s *claimstatus.ClaimStatus) bool {
		return !s.IsDeleted && strings.EqualFold(s.StatusName, name)
	})
	if !ok {
		return nil, notFound(claimStatusEntity, name)
	}
	return s, nil
}

func (r *claimStatusRepository) List(ctx context.Context, filter *types.ClaimStatusFilter) ([]*claimstatus.ClaimStatus, error) {
	if filter == nil {
		filter = types.NewClaimStatusFilter()
	}
	return r.store.ClaimStatuses.List(func(s *claimstatus.ClaimStatus) bool {
		return !s.IsDeleted || filter.GetIncludeDeleted()
	}, func(a, b *claimstatus.ClaimStatus) bool {
		return a.StatusName < b.StatusName
	}, filter.QueryFilter), nil
}

func (r *claimStatusRepository) Update(ctx context.Context, s *claimstatus.ClaimStatus) error {
	existing, ok := r.store.ClaimStatuses.Get(s.ID)
	if !ok || existing.IsDeleted {
		return notFound(claimStatusEntity, s.ID)
	}
	s.Touch(ctx)
	s.CreatedAt, s.CreatedBy, s.IsDeleted = existing.CreatedAt, existing.CreatedBy, false
	r.store.ClaimStatuses.Put(ctx, s.ID, *s)
	return nil
}

func (r *claimStatusRepository) Delete(ctx context.Context, id string) error {
	s, ok := r.store.ClaimStatuses.Get(id)
	if !ok || s.IsDeleted {
		return notFound(claimStatusEntity, id)
	}
	s.Touch(ctx)
	s.IsDeleted = true
	r.store.ClaimStatuses.Put(ctx, id, *s)
	return nil
}
