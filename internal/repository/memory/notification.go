package memory

import (
	"context"
	"time"

	"github.com/claimsdesk/claims-service/internal/domain/notification"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/samber/lo"
)

const notificationEntity = "Notification"

type notificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) notification.Repository {
	return &notificationRepository{store: store}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if n.ID == "" {
		n.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTIFICATION)
	}
	n.EnsureCreated(ctx)
	if n.NextAttemptAt.IsZero() {
		n.NextAttemptAt = n.CreatedAt
	}

	if x, ok := r.store.Claims.Get(n.ClaimID); !ok || x.IsDeleted {
		return missingReference(notificationEntity, "claim_notifications_claim_id_fkey")
	}
	r.store.Notifications.Put(ctx, n.ID, *n)
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	n, ok := r.store.Notifications.Get(id)
	if !ok || n.IsDeleted {
		return nil, notFound(notificationEntity, id)
	}
	return n, nil
}

func (r *notificationRepository) GetLatestByClaim(ctx context.Context, claimID string) (*notification.Notification, error) {
	items := r.store.Notifications.List(func(n *notification.Notification) bool {
		return !n.IsDeleted && n.ClaimID == claimID
	}, func(a, b *notification.Notification) bool {
		return newestFirst(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano(), a.ID, b.ID)
	}, nil)
	if len(items) == 0 {
		return nil, notFound(notificationEntity, claimID)
	}
	return items[0], nil
}

func (r *notificationRepository) List(ctx context.Context, filter *types.NotificationFilter) ([]*notification.Notification, error) {
	if filter == nil {
		filter = types.NewNotificationFilter()
	}
	return r.store.Notifications.List(func(n *notification.Notification) bool {
		if n.IsDeleted && !filter.GetIncludeDeleted() {
			return false
		}
		if filter.ClaimID != "" && n.ClaimID != filter.ClaimID {
			return false
		}
		if len(filter.States) > 0 && !lo.Contains(filter.States, n.State) {
			return false
		}
		if filter.DueBefore != nil && n.NextAttemptAt.After(*filter.DueBefore) {
			return false
		}
		return true
	}, func(a, b *notification.Notification) bool {
		if !a.NextAttemptAt.Equal(b.NextAttemptAt) {
			return a.NextAttemptAt.Before(b.NextAttemptAt)
		}
		return a.ID < b.ID
	}, filter.QueryFilter), nil
}

func (r *notificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	existing, ok := r.store.Notifications.Get(n.ID)
	if !ok || existing.IsDeleted {
		return notFound(notificationEntity, n.ID)
	}
	n.Touch(ctx)
	n.CreatedAt, n.CreatedBy = existing.CreatedAt, existing.CreatedBy
	r.store.Notifications.Put(ctx, n.ID, *n)
	return nil
}

func (r *notificationRepository) ClaimDue(ctx context.Context, now, leaseUntil time.Time, limit int) ([]*notification.Notification, error) {
	r.store.leaseMu.Lock()
	defer r.store.leaseMu.Unlock()

	filter := &types.NotificationFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		States:      []types.NotificationState{types.NotificationStatePending},
		DueBefore:   &now,
	}
	if limit > 0 {
		filter.Limit = &limit
	}
	due, err := r.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, n := range due {
		n.NextAttemptAt = leaseUntil
		n.Touch(ctx)
		r.store.Notifications.Put(ctx, n.ID, *n)
	}
	return due, nil
}
