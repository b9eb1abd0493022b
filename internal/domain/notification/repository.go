package notification

import (
	"context"
	"time"

	"github.com/claimsdesk/claims-service/internal/types"
)

// Repository defines the interface for outbox data access
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	Get(ctx context.Context, id string) (*Notification, error)
	// GetLatestByClaim returns the most recent notification recorded for a claim
	GetLatestByClaim(ctx context.Context, claimID string) (*Notification, error)
	List(ctx context.Context, filter *types.NotificationFilter) ([]*Notification, error)
	Update(ctx context.Context, notification *Notification) error
	// ClaimDue atomically takes up to limit pending entries due at now and
	// moves their next attempt to leaseUntil, so a concurrent caller cannot
	// take the same entries. limit <= 0 means no limit.
	ClaimDue(ctx context.Context, now, leaseUntil time.Time, limit int) ([]*Notification, error)
}
