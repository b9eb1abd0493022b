package postgres

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/policy"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/postgres"
	"github.com/claimsdesk/claims-service/internal/types"
)

const (
	policyEntity  = "Policy"
	policyColumns = `id, claimant_id, policy_number, policy_type, effective_date, expiration_date, description,
		created_at, created_by, updated_at, updated_by, is_deleted`
)

type policyRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPolicyRepository(db *postgres.DB, logger *logger.Logger) policy.Repository {
	return &policyRepository{db: db, logger: logger}
}

func (r *policyRepository) Create(ctx context.Context, p *policy.Policy) error {
	if p.ID == "" {
		p.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY)
	}
	p.EnsureCreated(ctx)

	query := `
		INSERT INTO policies (
			id, claimant_id, policy_number, policy_type, effective_date, expiration_date, description,
			created_at, created_by, updated_at, updated_by, is_deleted
		) VALUES (
			:id, :claimant_id, :policy_number, :policy_type, :effective_date, :expiration_date, :description,
			:created_at, :created_by, :updated_at, :updated_by, :is_deleted
		)`

	r.logger.Debugw("creating policy",
		"policy_id", p.ID,
		"claimant_id", p.ClaimantID,
	)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	return mapError(err, policyEntity, p.ID)
}

func (r *policyRepository) Get(ctx context.Context, id string, includeDeleted bool) (*policy.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE id = ?`
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	return getOne[policy.Policy](ctx, r.db.GetQuerier(ctx), policyEntity, id, query, id)
}

func (r *policyRepository) GetByClaimantAndNumber(ctx context.Context, claimantID, policyNumber string) (*policy.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies
		WHERE claimant_id = ? AND policy_number = ? AND is_deleted = FALSE`
	return getOne[policy.Policy](ctx, r.db.GetQuerier(ctx), policyEntity, policyNumber, query, claimantID, policyNumber)
}

func (r *policyRepository) filtered(filter *types.PolicyFilter) *selectBuilder {
	if filter == nil {
		filter = types.NewPolicyFilter()
	}
	return newSelect(policyColumns, "policies").
		visible(filter.GetIncludeDeleted()).
		whereIf(filter.ClaimantID, "claimant_id = ?").
		whereIf(filter.PolicyNumber, "policy_number = ?")
}

func (r *policyRepository) List(ctx context.Context, filter *types.PolicyFilter) ([]*policy.Policy, error) {
	if filter == nil {
		filter = types.NewPolicyFilter()
	}
	q := r.db.GetQuerier(ctx)
	query, args := r.filtered(filter).list(q, filter.QueryFilter, "created_at DESC, id DESC")

	var policies []*policy.Policy
	if err := q.SelectContext(ctx, &policies, query, args...); err != nil {
		return nil, mapError(err, policyEntity, "")
	}
	return policies, nil
}

func (r *policyRepository) Count(ctx context.Context, filter *types.PolicyFilter) (int, error) {
	q := r.db.GetQuerier(ctx)
	query, args := r.filtered(filter).count(q)

	var count int
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, mapError(err, policyEntity, "")
	}
	return count, nil
}

func (r *policyRepository) Update(ctx context.Context, p *policy.Policy) error {
	p.Touch(ctx)

	query := `
		UPDATE policies SET
			claimant_id = :claimant_id,
			policy_number = :policy_number,
			policy_type = :policy_type,
			effective_date = :effective_date,
			expiration_date = :expiration_date,
			description = :description,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND is_deleted = FALSE`

	r.logger.Debugw("updating policy", "policy_id", p.ID)

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	if err != nil {
		return mapError(err, policyEntity, p.ID)
	}
	return requireAffected(res, policyEntity, p.ID)
}

func (r *policyRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting policy", "policy_id", id)
	return softDelete(ctx, r.db, "policies", policyEntity, id)
}
