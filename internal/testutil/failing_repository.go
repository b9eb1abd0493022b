package testutil

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/domain/document"
	"github.com/claimsdesk/claims-service/internal/domain/notification"
)

// FailingClaimRepository wraps a claim repository and fails Create with
// FailCreate when it is set
type FailingClaimRepository struct {
	claim.Repository
	FailCreate error
}

func (r *FailingClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	if r.FailCreate != nil {
		return r.FailCreate
	}
	return r.Repository.Create(ctx, c)
}

// FailingDocumentRepository fails Create once Created documents reach FailAfter
type FailingDocumentRepository struct {
	document.Repository
	FailAfter  int
	FailCreate error
	created    int
}

func (r *FailingDocumentRepository) Create(ctx context.Context, d *document.Document) error {
	if r.FailCreate != nil && r.created >= r.FailAfter {
		return r.FailCreate
	}
	if err := r.Repository.Create(ctx, d); err != nil {
		return err
	}
	r.created++
	return nil
}

// FailingNotificationRepository fails Create and Update with the matching error when set
type FailingNotificationRepository struct {
	notification.Repository
	FailCreate error
	FailUpdate error
}

func (r *FailingNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if r.FailCreate != nil {
		return r.FailCreate
	}
	return r.Repository.Create(ctx, n)
}

func (r *FailingNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if r.FailUpdate != nil {
		return r.FailUpdate
	}
	return r.Repository.Update(ctx, n)
}
