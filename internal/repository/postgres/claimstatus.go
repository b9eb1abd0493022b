package postgres

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/postgres"
	"github.com/claimsdesk/claims-service/internal/types"
)

const (
	claimStatusEntity  = "Claim status"
	claimStatusColumns = `id, status_name, created_at, created_by, updated_at, updated_by, is_deleted`
)

type claimStatusRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewClaimStatusRepository(db *postgres.DB, logger *logger.Logger) claimstatus.Repository {
	return &claimStatusRepository{db: db, logger: logger}
}

func (r *claimStatusRepository) Create(ctx context.Context, s *claimstatus.ClaimStatus) error {
	if s.ID == "" {
		s.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIM_STATUS)
	}
	s.EnsureCreated(ctx)

	query := `
		INSERT INTO claim_statuses (
			id, status_name, created_at, created_by, updated_at, updated_by, is_deleted
		) VALUES (
			:id, :status_name, :created_at, :created_by, :updated_at, :updated_by, :is_deleted
		)`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s)
	return mapError(err, claimStatusEntity, s.ID)
}

func (r *claimStatusRepository) Get(ctx context.Context, id string, includeDeleted bool) (*claimstatus.ClaimStatus, error) {
	query := `SELECT ` + claimStatusColumns + ` FROM claim_statuses WHERE id = ?`
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	return getOne[claimstatus.ClaimStatus](ctx, r.db.GetQuerier(ctx), claimStatusEntity, id, query, id)
}

func (r *claimStatusRepository) GetByName(ctx context.Context, name string) (*claimstatus.ClaimStatus, error) {
	query := `SELECT ` + claimStatusColumns + ` FROM claim_statuses
		WHERE LOWER(status_name) = LOWER(?) AND is_deleted = FALSE`
	return getOne[claimstatus.ClaimStatus](ctx, r.db.GetQuerier(ctx), claimStatusEntity, name, query, name)
}

func (r *claimStatusRepository) List(ctx context.Context, filter *types.ClaimStatusFilter) ([]*claimstatus.ClaimStatus, error) {
	if filter == nil {
		filter = types.NewClaimStatusFilter()
	}
	q := r.db.GetQuerier(ctx)
	query, args := newSelect(claimStatusColumns, "claim_statuses").
		visible(filter.GetIncludeDeleted()).
		list(q, filter.QueryFilter, "status_name ASC")

	var statuses []*claimstatus.ClaimStatus
	if err := q.SelectContext(ctx, &statuses, query, args...); err != nil {
		return nil, mapError(err, claimStatusEntity, "")
	}
	return statuses, nil
}

func (r *claimStatusRepository) Update(ctx context.Context, s *claimstatus.ClaimStatus) error {
	s.Touch(ctx)

	query := `
		UPDATE claim_statuses SET
			status_name = :status_name,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND is_deleted = FALSE`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s)
	if err != nil {
		return mapError(err, claimStatusEntity, s.ID)
	}
	return requireAffected(res, claimStatusEntity, s.ID)
}

func (r *claimStatusRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting claim status", "status_id", id)
	return softDelete(ctx, r.db, "claim_statuses", claimStatusEntity, id)
}
