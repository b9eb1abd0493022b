package postgres

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/postgres"
	"github.com/claimsdesk/claims-service/internal/types"
)

const (
	claimEntity  = "Claim"
	claimColumns = `id, description, amount, date_of_incident, incident_location, claimant_id, policy_id, status_id,
		created_at, created_by, updated_at, updated_by, is_deleted`
)

type claimRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewClaimRepository(db *postgres.DB, logger *logger.Logger) claim.Repository {
	return &claimRepository{db: db, logger: logger}
}

func (r *claimRepository) Create(ctx context.Context, c *claim.Claim) error {
	if c.ID == "" {
		c.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIM)
	}
	c.EnsureCreated(ctx)

	query := `
		INSERT INTO claims (
			id, description, amount, date_of_incident, incident_location, claimant_id, policy_id, status_id,
			created_at, created_by, updated_at, updated_by, is_deleted
		) VALUES (
			:id, :description, :amount, :date_of_incident, :incident_location, :claimant_id, :policy_id, :status_id,
			:created_at, :created_by, :updated_at, :updated_by, :is_deleted
		)`

	r.logger.Debugw("creating claim",
		"claim_id", c.ID,
		"claimant_id", c.ClaimantID,
		"policy_id", c.PolicyID,
	)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	return mapError(err, claimEntity, c.ID)
}

func (r *claimRepository) Get(ctx context.Context, id string, includeDeleted bool) (*claim.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = ?`
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	return getOne[claim.Claim](ctx, r.db.GetQuerier(ctx), claimEntity, id, query, id)
}

func (r *claimRepository) filtered(filter *types.ClaimFilter) *selectBuilder {
	if filter == nil {
		filter = types.NewClaimFilter()
	}
	return newSelect(claimColumns, "claims").
		visible(filter.GetIncludeDeleted()).
		whereIf(filter.ClaimantID, "claimant_id = ?").
		whereIf(filter.PolicyID, "policy_id = ?").
		whereIf(filter.StatusID, "status_id = ?")
}

func (r *claimRepository) List(ctx context.Context, filter *types.ClaimFilter) ([]*claim.Claim, error) {
	if filter == nil {
		filter = types.NewClaimFilter()
	}
	q := r.db.GetQuerier(ctx)
	query, args := r.filtered(filter).list(q, filter.QueryFilter, "created_at DESC, id DESC")

	var claims []*claim.Claim
	if err := q.SelectContext(ctx, &claims, query, args...); err != nil {
		return nil, mapError(err, claimEntity, "")
	}
	return claims, nil
}

func (r *claimRepository) Count(ctx context.Context, filter *types.ClaimFilter) (int, error) {
	q := r.db.GetQuerier(ctx)
	query, args := r.filtered(filter).count(q)

	var count int
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, mapError(err, claimEntity, "")
	}
	return count, nil
}

func (r *claimRepository) Update(ctx context.Context, c *claim.Claim) error {
	c.Touch(ctx)

	query := `
		UPDATE claims SET
			description = :description,
			amount = :amount,
			date_of_incident = :date_of_incident,
			incident_location = :incident_location,
			claimant_id = :claimant_id,
			policy_id = :policy_id,
			status_id = :status_id,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND is_deleted = FALSE`

	r.logger.Debugw("updating claim", "claim_id", c.ID)

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return mapError(err, claimEntity, c.ID)
	}
	return requireAffected(res, claimEntity, c.ID)
}

func (r *claimRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting claim", "claim_id", id)
	return softDelete(ctx, r.db, "claims", claimEntity, id)
}
