package postgres

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/postgres"
	"github.com/claimsdesk/claims-service/internal/types"
)

const (
	claimantEntity  = "Claimant"
	claimantColumns = `id, first_name, middle_name, last_name, date_of_birth, marital_status, nationality,
		email, confirm_email, phone, alt_phone,
		address_line1, address_line2, city, state, zip, country,
		passport, driver_license, tax_id,
		card_number, card_expiry, card_cvv, card_holder, notes,
		created_at, created_by, updated_at, updated_by, is_deleted`
)

type claimantRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewClaimantRepository(db *postgres.DB, logger *logger.Logger) claimant.Repository {
	return &claimantRepository{db: db, logger: logger}
}

func (r *claimantRepository) Create(ctx context.Context, c *claimant.Claimant) error {
	if c.ID == "" {
		c.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIMANT)
	}
	c.EnsureCreated(ctx)

	query := `
		INSERT INTO claimants (
			id, first_name, middle_name, last_name, date_of_birth, marital_status, nationality,
			email, confirm_email, phone, alt_phone,
			address_line1, address_line2, city, state, zip, country,
			passport, driver_license, tax_id,
			card_number, card_expiry, card_cvv, card_holder, notes,
			created_at, created_by, updated_at, updated_by, is_deleted
		) VALUES (
			:id, :first_name, :middle_name, :last_name, :date_of_birth, :marital_status, :nationality,
			:email, :confirm_email, :phone, :alt_phone,
			:address_line1, :address_line2, :city, :state, :zip, :country,
			:passport, :driver_license, :tax_id,
			:card_number, :card_expiry, :card_cvv, :card_holder, :notes,
			:created_at, :created_by, :updated_at, :updated_by, :is_deleted
		)`

	r.logger.Debugw("creating claimant", "claimant_id", c.ID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	return mapError(err, claimantEntity, c.ID)
}

func (r *claimantRepository) Get(ctx context.Context, id string, includeDeleted bool) (*claimant.Claimant, error) {
	query := `SELECT ` + claimantColumns + ` FROM claimants WHERE id = ?`
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	return getOne[claimant.Claimant](ctx, r.db.GetQuerier(ctx), claimantEntity, id, query, id)
}

func (r *claimantRepository) filtered(filter *types.ClaimantFilter) *selectBuilder {
	if filter == nil {
		filter = types.NewClaimantFilter()
	}
	return newSelect(claimantColumns, "claimants").
		visible(filter.GetIncludeDeleted()).
		whereIf(filter.Email, "LOWER(email) = LOWER(?)")
}

func (r *claimantRepository) List(ctx context.Context, filter *types.ClaimantFilter) ([]*claimant.Claimant, error) {
	if filter == nil {
		filter = types.NewClaimantFilter()
	}
	q := r.db.GetQuerier(ctx)
	query, args := r.filtered(filter).list(q, filter.QueryFilter, "created_at DESC, id DESC")

	var claimants []*claimant.Claimant
	if err := q.SelectContext(ctx, &claimants, query, args...); err != nil {
		return nil, mapError(err, claimantEntity, "")
	}
	return claimants, nil
}

func (r *claimantRepository) Count(ctx context.Context, filter *types.ClaimantFilter) (int, error) {
	q := r.db.GetQuerier(ctx)
	query, args := r.filtered(filter).count(q)

	var count int
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, mapError(err, claimantEntity, "")
	}
	return count, nil
}

func (r *claimantRepository) Update(ctx context.Context, c *claimant.Claimant) error {
	c.Touch(ctx)

	query := `
		UPDATE claimants SET
			first_name = :first_name,
			middle_name = :middle_name,
			last_name = :last_name,
			date_of_birth = :date_of_birth,
			marital_status = :marital_status,
			nationality = :nationality,
			email = :email,
			confirm_email = :confirm_email,
			phone = :phone,
			alt_phone = :alt_phone,
			address_line1 = :address_line1,
			address_line2 = :address_line2,
			city = :city,
			state = :state,
			zip = :zip,
			country = :country,
			passport = :passport,
			driver_license = :driver_license,
			tax_id = :tax_id,
			card_number = :card_number,
			card_expiry = :card_expiry,
			card_cvv = :card_cvv,
			card_holder = :card_holder,
			notes = :notes,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND is_deleted = FALSE`

	r.logger.Debugw("updating claimant", "claimant_id", c.ID)

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return mapError(err, claimantEntity, c.ID)
	}
	return requireAffected(res, claimantEntity, c.ID)
}

func (r *claimantRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting claimant", "claimant_id", id)
	return softDelete(ctx, r.db, "claimants", claimantEntity, id)
}
