package memory

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/policy"
	"github.com/claimsdesk/claims-service/internal/types"
)

const (
	policyEntity           = "Policy"
	policyNumberConstraint = "uq_policies_claimant_policy_number"
)

type policyRepository struct {
	store *Store
}

func NewPolicyRepository(store *Store) policy.Repository {
	return &policyRepository{store: store}
}

// checkConstraints mirrors the unique index and claimant foreign key of the SQL schema
func (r *policyRepository) checkConstraints(p *policy.Policy) error {
	if x, ok := r.store.Claimants.Get(p.ClaimantID); !ok || x.IsDeleted {
		return missingReference(policyEntity, "policies_claimant_id_fkey")
	}
	if _, dup := r.store.Policies.Find(func(other *policy.Policy) bool {
		return !other.IsDeleted &&
			other.ID != p.ID &&
			other.ClaimantID == p.ClaimantID &&
			other.PolicyNumber == p.PolicyNumber
	}); dup {
		return alreadyExists(policyEntity, policyNumberConstraint)
	}
	return nil
}

func (r *policyRepository) Create(ctx context.Context, p *policy.Policy) error {
	if p.ID == "" {
		p.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY)
	}
	p.EnsureCreated(ctx)

	if err := r.checkConstraints(p); err != nil {
		return err
	}
	r.store.Policies.Put(ctx, p.ID, *p)
	return nil
}

func (r *policyRepository) Get(ctx context.Context, id string, includeDeleted bool) (*policy.Policy, error) {
	p, ok := r.store.Policies.Get(id)
	if !ok || (p.IsDeleted && !includeDeleted) {
		return nil, notFound(policyEntity, id)
	}
	return p, nil
}

func (r *policyRepository) GetByClaimantAndNumber(ctx context.Context, claimantID, policyNumber string) (*policy.Policy, error) {
	p, ok := r.store.Policies.Find(func(p *policy.Policy) bool {
		return !p.IsDeleted && p.ClaimantID == claimantID && p.PolicyNumber == policyNumber
	})
	if !ok {
		return nil, notFound(policyEntity, policyNumber)
	}
	return p, nil
}

func (r *policyRepository) match(filter *types.PolicyFilter) FilterFunc[policy.Policy] {
	return func(p *policy.Policy) bool {
		if p.IsDeleted && !filter.GetIncludeDeleted() {
			return false
		}
		if filter.ClaimantID != "" && p.ClaimantID != filter.ClaimantID {
			return false
		}
		if filter.PolicyNumber != "" && p.PolicyNumber != filter.PolicyNumber {
			return false
		}
		return true
	}
}

func (r *policyRepository) List(ctx context.Context, filter *types.PolicyFilter) ([]*policy.Policy, error) {
	if filter == nil {
		filter = types.NewPolicyFilter()
	}
	return r.store.Policies.List(r.match(filter), func(a, b *policy.Policy) bool {
		return newestFirst(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano(), a.ID, b.ID)
	}, filter.QueryFilter), nil
}

func (r *policyRepository) Count(ctx context.Context, filter *types.PolicyFilter) (int, error) {
	if filter == nil {
		filter = types.NewPolicyFilter()
	}
	return r.store.Policies.Count(r.match(filter)), nil
}

func (r *policyRepository) Update(ctx context.Context, p *policy.Policy) error {
	existing, ok := r.store.Policies.Get(p.ID)
	if !ok || existing.IsDeleted {
		return notFound(policyEntity, p.ID)
	}
	if err := r.checkConstraints(p); err != nil {
		return err
	}
	p.Touch(ctx)
	p.CreatedAt, p.CreatedBy, p.IsDeleted = existing.CreatedAt, existing.CreatedBy, false
	r.store.Policies.Put(ctx, p.ID, *p)
	return nil
}

func (r *policyRepository) Delete(ctx context.Context, id string) error {
	p, ok := r.store.Policies.Get(id)
	if !ok || p.IsDeleted {
		return notFound(policyEntity, id)
	}
	p.Touch(ctx)
	p.IsDeleted = true
	r.store.Policies.Put(ctx, id, *p)
	return nil
}
