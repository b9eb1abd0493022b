package memory

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/document"
	"github.com/claimsdesk/claims-service/internal/types"
)

const documentEntity = "Document"

type documentRepository struct {
	store *Store
}

func NewDocumentRepository(store *Store) document.Repository {
	return &documentRepository{store: store}
}

func (r *documentRepository) Create(ctx context.Context, d *document.Document) error {
	if d.ID == "" {
		d.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT)
	}
	d.EnsureCreated(ctx)

	if x, ok := r.store.Claims.Get(d.ClaimID); !ok || x.IsDeleted {
		return missingReference(documentEntity, "documents_claim_id_fkey")
	}
	r.store.Documents.Put(ctx, d.ID, *d)
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id string, includeDeleted bool) (*document.Document, error) {
	d, ok := r.store.Documents.Get(id)
	if !ok || (d.IsDeleted && !includeDeleted) {
		return nil, notFound(documentEntity, id)
	}
	return d, nil
}

func (r *documentRepository) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	if filter == nil {
		filter = types.NewDocumentFilter()
	}
	return r.store.Documents.List(func(d *document.Document) bool {
		if d.IsDeleted && !filter.GetIncludeDeleted() {
			return false
		}
		return filter.ClaimID == "" || d.ClaimID == filter.ClaimID
	}, func(a, b *document.Document) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	}, filter.QueryFilter), nil
}

func (r *documentRepository) Update(ctx context.Context, d *document.Document) error {
	existing, ok := r.store.Documents.Get(d.ID)
	if !ok || existing.IsDeleted {
		return notFound(documentEntity, d.ID)
	}
	d.Touch(ctx)
	d.CreatedAt, d.CreatedBy, d.IsDeleted = existing.CreatedAt, existing.CreatedBy, false
	r.store.Documents.Put(ctx, d.ID, *d)
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	d, ok := r.store.Documents.Get(id)
	if !ok || d.IsDeleted {
		return notFound(documentEntity, id)
	}
	d.Touch(ctx)
	d.IsDeleted = true
	r.store.Documents.Put(ctx, id, *d)
	return nil
}

func (r *documentRepository) DeleteByClaim(ctx context.Context, claimID string) (int, error) {
	docs := r.store.Documents.List(func(d *document.Document) bool {
		return d.ClaimID == claimID
	}, nil, nil)

	for _, d := range docs {
		r.store.Documents.Remove(ctx, d.ID)
	}
	return len(docs), nil
}
