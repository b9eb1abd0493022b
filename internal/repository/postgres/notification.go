package postgres

import (
	"context"
	"time"

	"github.com/claimsdesk/claims-service/internal/domain/notification"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/postgres"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

const (
	notificationEntity  = "Notification"
	notificationColumns = `id, claim_id, destination, event_name, payload, state, attempts, last_error,
		next_attempt_at, sent_at, created_at, created_by, updated_at, updated_by, is_deleted`
)

type notificationRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewNotificationRepository(db *postgres.DB, logger *logger.Logger) notification.Repository {
	return &notificationRepository{db: db, logger: logger}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if n.ID == "" {
		n.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTIFICATION)
	}
	n.EnsureCreated(ctx)
	if n.NextAttemptAt.IsZero() {
		n.NextAttemptAt = n.CreatedAt
	}

	query := `
		INSERT INTO claim_notifications (
			id, claim_id, destination, event_name, payload, state, attempts, last_error,
			next_attempt_at, sent_at, created_at, created_by, updated_at, updated_by, is_deleted
		) VALUES (
			:id, :claim_id, :destination, :event_name, :payload, :state, :attempts, :last_error,
			:next_attempt_at, :sent_at, :created_at, :created_by, :updated_at, :updated_by, :is_deleted
		)`

	r.logger.Debugw("recording notification",
		"notification_id", n.ID,
		"claim_id", n.ClaimID,
		"state", n.State,
	)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, n)
	return mapError(err, notificationEntity, n.ID)
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM claim_notifications WHERE id = ? AND is_deleted = FALSE`
	return getOne[notification.Notification](ctx, r.db.GetQuerier(ctx), notificationEntity, id, query, id)
}

func (r *notificationRepository) GetLatestByClaim(ctx context.Context, claimID string) (*notification.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM claim_notifications
		WHERE claim_id = ? AND is_deleted = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	return getOne[notification.Notification](ctx, r.db.GetQuerier(ctx), notificationEntity, claimID, query, claimID)
}

func (r *notificationRepository) List(ctx context.Context, filter *types.NotificationFilter) ([]*notification.Notification, error) {
	if filter == nil {
		filter = types.NewNotificationFilter()
	}
	q := r.db.GetQuerier(ctx)

	b := newSelect(notificationColumns, "claim_notifications").
		visible(filter.GetIncludeDeleted()).
		whereIf(filter.ClaimID, "claim_id = ?")
	if len(filter.States) > 0 {
		b.where("state = ANY(?)", pq.Array(lo.Map(filter.States, func(s types.NotificationState, _ int) string {
			return string(s)
		})))
	}
	if filter.DueBefore != nil {
		b.where("next_attempt_at <= ?", *filter.DueBefore)
	}
	query, args := b.list(q, filter.QueryFilter, "next_attempt_at ASC, id ASC")

	var notifications []*notification.Notification
	if err := q.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, mapError(err, notificationEntity, "")
	}
	return notifications, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	n.Touch(ctx)

	query := `
		UPDATE claim_notifications SET
			state = :state,
			attempts = :attempts,
			last_error = :last_error,
			next_attempt_at = :next_attempt_at,
			sent_at = :sent_at,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND is_deleted = FALSE`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, n)
	if err != nil {
		return mapError(err, notificationEntity, n.ID)
	}
	return requireAffected(res, notificationEntity, n.ID)
}

func (r *notificationRepository) ClaimDue(ctx context.Context, now, leaseUntil time.Time, limit int) ([]*notification.Notification, error) {
	q := r.db.GetQuerier(ctx)

	// SKIP LOCKED leaves rows another pass is claiming to that pass
	inner := `SELECT id FROM claim_notifications
		WHERE state = ? AND is_deleted = FALSE AND next_attempt_at <= ?
		ORDER BY next_attempt_at ASC, id ASC`
	args := []interface{}{leaseUntil, now, types.GetUserID(ctx), types.NotificationStatePending, now}
	if limit > 0 {
		inner += ` LIMIT ?`
		args = append(args, limit)
	}
	query := `UPDATE claim_notifications SET next_attempt_at = ?, updated_at = ?, updated_by = ?
		WHERE id IN (` + inner + ` FOR UPDATE SKIP LOCKED)
		RETURNING ` + notificationColumns

	var claimed []*notification.Notification
	if err := q.SelectContext(ctx, &claimed, q.Rebind(query), args...); err != nil {
		return nil, mapError(err, notificationEntity, "")
	}
	return claimed, nil
}
