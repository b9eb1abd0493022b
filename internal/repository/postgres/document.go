package postgres

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/document"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/postgres"
	"github.com/claimsdesk/claims-service/internal/types"
)

const (
	documentEntity  = "Document"
	documentColumns = `id, claim_id, file_name, file_path, file_type, created_at, created_by, updated_at, updated_by, is_deleted`
)

type documentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewDocumentRepository(db *postgres.DB, logger *logger.Logger) document.Repository {
	return &documentRepository{db: db, logger: logger}
}

func (r *documentRepository) Create(ctx context.Context, d *document.Document) error {
	if d.ID == "" {
		d.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT)
	}
	d.EnsureCreated(ctx)

	query := `
		INSERT INTO documents (
			id, claim_id, file_name, file_path, file_type, created_at, created_by, updated_at, updated_by, is_deleted
		) VALUES (
			:id, :claim_id, :file_name, :file_path, :file_type, :created_at, :created_by, :updated_at, :updated_by, :is_deleted
		)`

	r.logger.Debugw("creating document", "document_id", d.ID, "claim_id", d.ClaimID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, d)
	return mapError(err, documentEntity, d.ID)
}

func (r *documentRepository) Get(ctx context.Context, id string, includeDeleted bool) (*document.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	return getOne[document.Document](ctx, r.db.GetQuerier(ctx), documentEntity, id, query, id)
}

func (r *documentRepository) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	if filter == nil {
		filter = types.NewDocumentFilter()
	}
	q := r.db.GetQuerier(ctx)
	query, args := newSelect(documentColumns, "documents").
		visible(filter.GetIncludeDeleted()).
		whereIf(filter.ClaimID, "claim_id = ?").
		list(q, filter.QueryFilter, "created_at ASC, id ASC")

	var documents []*document.Document
	if err := q.SelectContext(ctx, &documents, query, args...); err != nil {
		return nil, mapError(err, documentEntity, "")
	}
	return documents, nil
}

func (r *documentRepository) Update(ctx context.Context, d *document.Document) error {
	d.Touch(ctx)

	query := `
		UPDATE documents SET
			file_name = :file_name,
			file_path = :file_path,
			file_type = :file_type,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND is_deleted = FALSE`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, d)
	if err != nil {
		return mapError(err, documentEntity, d.ID)
	}
	return requireAffected(res, documentEntity, d.ID)
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "documents", documentEntity, id)
}

func (r *documentRepository) DeleteByClaim(ctx context.Context, claimID string) (int, error) {
	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM documents WHERE claim_id = ?`), claimID)
	if err != nil {
		return 0, mapError(err, documentEntity, claimID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err, documentEntity, claimID)
	}

	r.logger.Debugw("deleted claim documents", "claim_id", claimID, "count", n)
	return int(n), nil
}
