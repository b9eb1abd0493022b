package service

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/domain/notification"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/interfaces"
	"github.com/claimsdesk/claims-service/internal/publisher"
	"github.com/claimsdesk/claims-service/internal/sentry"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"
)

const (
	// publish attempts made in process before an outbox entry waits for the next pass
	relayPublishRetries = 2
	maxRetryDelay       = time.Hour
)

type NotificationService = interfaces.NotificationService

type notificationService struct {
	ServiceParams
	limiter *rate.Limiter
}

func NewNotificationService(params ServiceParams) NotificationService {
	limit := rate.Inf
	if params.Config.Messaging.Outbox.RatePerSec > 0 {
		limit = rate.Limit(params.Config.Messaging.Outbox.RatePerSec)
	}
	return &notificationService{
		ServiceParams: params,
		limiter:       rate.NewLimiter(limit, 1),
	}
}

// StageClaimEvent writes env to the outbox as pending. Call it inside the
// transaction that commits the claim so the event cannot be lost. The entry
// is leased to the caller until DispatchStaged records the outcome.
func (s *notificationService) StageClaimEvent(ctx context.Context, env *publisher.Envelope) (*notification.Notification, error) {
	n := &notification.Notification{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTIFICATION),
		ClaimID:       env.ClaimID,
		Destination:   env.Destination,
		EventName:     env.EventName,
		Payload:       env.Payload,
		State:         types.NotificationStatePending,
		NextAttemptAt: time.Now().UTC().Add(s.lease()),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if err := s.NotificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// DispatchStaged makes one publish attempt for a staged entry and records the
// outcome. If the outcome cannot be recorded the entry stays pending and the
// relay delivers it once the lease lapses.
func (s *notificationService) DispatchStaged(ctx context.Context, n *notification.Notification) error {
	log := s.Logger.WithContext(ctx)

	publishErr := s.ClaimPublisher.PublishEnvelope(ctx, envelopeOf(n))
	s.recordOutcome(ctx, n, publishErr)

	if err := s.NotificationRepo.Update(ctx, n); err != nil {
		log.Errorw("failed to record claim event outcome",
			"notification_id", n.ID,
			"claim_id", n.ClaimID,
			"published", publishErr == nil,
			"error", err,
		)
	} else if publishErr != nil {
		log.Warnw("claim event parked in outbox",
			"notification_id", n.ID,
			"claim_id", n.ClaimID,
			"next_attempt_at", n.NextAttemptAt,
		)
	}

	if publishErr != nil {
		return asNotificationError(publishErr)
	}
	return nil
}

// ReplayClaimNotification publishes the claim's stored event again. A claim
// with nothing stored gets its event rebuilt from the current records.
func (s *notificationService) ReplayClaimNotification(ctx context.Context, claimID string) (*dto.NotificationResponse, error) {
	c, err := s.ClaimRepo.Get(ctx, claimID, false)
	if err != nil {
		return nil, err
	}

	n, err := s.NotificationRepo.GetLatestByClaim(ctx, claimID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if n == nil {
		n, err = s.rebuild(ctx, c)
		if err != nil {
			return nil, err
		}
	}

	publishErr := s.deliver(ctx, n)
	if err := s.NotificationRepo.Update(ctx, n); err != nil {
		return nil, err
	}
	if publishErr != nil {
		return nil, publishErr
	}

	s.Logger.WithContext(ctx).Infow("claim event replayed",
		"notification_id", n.ID,
		"claim_id", claimID,
	)
	return dto.NewNotificationResponse(n), nil
}

func (s *notificationService) rebuild(ctx context.Context, c *claim.Claim) (*notification.Notification, error) {
	p, err := s.PolicyRepo.Get(ctx, c.PolicyID, true)
	if err != nil {
		return nil, err
	}

	env, err := s.ClaimPublisher.NewSubmittedEnvelope(&claim.SubmittedEvent{
		ClaimID:      c.ID,
		Description:  c.Description,
		Amount:       types.NewAmount(c.Amount),
		PolicyNumber: p.PolicyNumber,
	})
	if err != nil {
		return nil, err
	}

	n := &notification.Notification{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTIFICATION),
		ClaimID:       c.ID,
		Destination:   env.Destination,
		EventName:     env.EventName,
		Payload:       env.Payload,
		State:         types.NotificationStatePending,
		NextAttemptAt: time.Now().UTC(),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if err := s.NotificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// RelayPending delivers due outbox entries with a bounded, rate limited pool
func (s *notificationService) RelayPending(ctx context.Context) (*dto.RelayResult, error) {
	cfg := s.Config.Messaging.Outbox
	span, ctx := s.Sentry.StartTransaction(ctx, "outbox.relay")
	defer sentry.FinishSpan(span, nil)

	now := time.Now().UTC()
	due, err := s.NotificationRepo.ClaimDue(ctx, now, now.Add(s.lease()), cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	result := &dto.RelayResult{Processed: len(due)}
	if len(due) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(max(cfg.Concurrency, 1))
	for _, n := range due {
		p.Go(func() {
			if err := s.limiter.Wait(ctx); err != nil {
				return
			}

			publishErr := s.deliver(ctx, n)
			if err := s.NotificationRepo.Update(ctx, n); err != nil {
				s.Logger.WithContext(ctx).Errorw("failed to update outbox entry",
					"notification_id", n.ID,
					"error", err,
				)
			}
			s.Metrics.IncRelayed(string(n.State))

			mu.Lock()
			defer mu.Unlock()
			if publishErr == nil {
				result.Sent++
			} else if n.State == types.NotificationStateFailed {
				result.Failed++
			}
		})
	}
	p.Wait()

	s.Logger.WithContext(ctx).Infow("outbox relay pass finished",
		"processed", result.Processed,
		"sent", result.Sent,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *notificationService) GetNotificationStatus(ctx context.Context, claimID string) (types.NotificationStatus, error) {
	n, err := s.NotificationRepo.GetLatestByClaim(ctx, claimID)
	if err != nil {
		if ierr.IsNotFound(err) {
			// no entry means no delivery was ever confirmed
			return types.NotificationStatusPending, nil
		}
		return "", err
	}
	if n.State == types.NotificationStateSent {
		return types.NotificationStatusPublished, nil
	}
	return types.NotificationStatusPending, nil
}

// deliver publishes n with a few quick retries and records the outcome on n
func (s *notificationService) deliver(ctx context.Context, n *notification.Notification) error {
	env := envelopeOf(n)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	err := backoff.Retry(func() error {
		return s.ClaimPublisher.PublishEnvelope(ctx, env)
	}, backoff.WithContext(backoff.WithMaxRetries(b, relayPublishRetries), ctx))

	s.recordOutcome(ctx, n, err)
	if err == nil {
		return nil
	}
	s.Logger.WithContext(ctx).Warnw("outbox delivery failed",
		"notification_id", n.ID,
		"claim_id", n.ClaimID,
		"attempts", n.Attempts,
		"state", n.State,
		"error", err,
	)
	return asNotificationError(err)
}

func (s *notificationService) recordOutcome(ctx context.Context, n *notification.Notification, err error) {
	now := time.Now().UTC()
	if err == nil {
		n.MarkSent(now)
	} else {
		n.MarkFailedAttempt(err, now, s.retryDelay(n.Attempts+1), s.Config.Messaging.Outbox.MaxAttempts)
	}
	n.Touch(ctx)
}

func (s *notificationService) lease() time.Duration {
	if l := s.Config.Messaging.Outbox.Lease; l > 0 {
		return l
	}
	return 2 * time.Minute
}

func envelopeOf(n *notification.Notification) *publisher.Envelope {
	return &publisher.Envelope{
		Destination: n.Destination,
		EventName:   n.EventName,
		ClaimID:     n.ClaimID,
		Payload:     n.Payload,
	}
}

func asNotificationError(err error) error {
	if ierr.IsNotification(err) {
		return err
	}
	return ierr.WithError(err).
		WithHint("Failed to publish claim event").
		Mark(ierr.ErrNotification)
}

// retryDelay doubles the relay interval for every attempt already made
func (s *notificationService) retryDelay(attempt int) time.Duration {
	delay := s.Config.Messaging.Outbox.Interval
	if delay <= 0 {
		delay = 30 * time.Second
	}
	for i := 1; i < attempt && delay < maxRetryDelay; i++ {
		delay *= 2
	}
	return min(delay, maxRetryDelay)
}
