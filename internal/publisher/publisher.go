package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/claimsdesk/claims-service/internal/config"
	"github.com/claimsdesk/claims-service/internal/domain/claim"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/metrics"
	"github.com/claimsdesk/claims-service/internal/pubsub"
	"github.com/claimsdesk/claims-service/internal/sentry"
	"github.com/claimsdesk/claims-service/internal/types"
)

// Envelope is the stored form of an event, enough to publish it again later
type Envelope struct {
	Destination string
	EventName   string
	ClaimID     string
	Payload     []byte
}

// ClaimPublisher publishes claim lifecycle events
type ClaimPublisher interface {
	// NewSubmittedEnvelope encodes the event without publishing it
	NewSubmittedEnvelope(event *claim.SubmittedEvent) (*Envelope, error)
	// PublishClaimSubmitted encodes and publishes the event
	PublishClaimSubmitted(ctx context.Context, event *claim.SubmittedEvent) error
	// PublishEnvelope publishes an already encoded event
	PublishEnvelope(ctx context.Context, env *Envelope) error
	Close() error
}

type claimPublisher struct {
	pubSub  pubsub.Publisher
	backend types.PubSubType
	config  *config.MessagingConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
	sentry  *sentry.Service
}

func NewClaimPublisher(
	pubSub pubsub.Publisher,
	cfg *config.Configuration,
	logger *logger.Logger,
	m *metrics.Metrics,
	sentryService *sentry.Service,
) ClaimPublisher {
	return &claimPublisher{
		pubSub:  pubSub,
		backend: cfg.Messaging.Backend,
		config:  &cfg.Messaging,
		logger:  logger,
		metrics: m,
		sentry:  sentryService,
	}
}

func (p *claimPublisher) NewSubmittedEnvelope(event *claim.SubmittedEvent) (*Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode claim submitted event").
			Mark(ierr.ErrSystem)
	}
	return &Envelope{
		Destination: p.config.ClaimsSubmittedDestination,
		EventName:   types.EventClaimSubmitted,
		ClaimID:     event.ClaimID,
		Payload:     payload,
	}, nil
}

func (p *claimPublisher) PublishClaimSubmitted(ctx context.Context, event *claim.SubmittedEvent) error {
	env, err := p.NewSubmittedEnvelope(event)
	if err != nil {
		return err
	}
	return p.PublishEnvelope(ctx, env)
}

func (p *claimPublisher) PublishEnvelope(ctx context.Context, env *Envelope) error {
	msg := message.NewMessage(types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MESSAGE), env.Payload)
	msg.Metadata.Set("event_name", env.EventName)
	msg.Metadata.Set("claim_id", env.ClaimID)
	msg.Metadata.Set("published_at", time.Now().UTC().Format(time.RFC3339))
	if requestID := types.GetRequestID(ctx); requestID != "" {
		msg.Metadata.Set("request_id", requestID)
	}

	log := p.logger.WithContext(ctx)
	log.Debugw("publishing claim event",
		"message_id", msg.UUID,
		"event_name", env.EventName,
		"claim_id", env.ClaimID,
		"destination", env.Destination,
	)

	span, spanCtx := p.sentry.StartPublishSpan(ctx, string(p.backend), env.Destination)
	err := p.pubSub.Publish(spanCtx, env.Destination, msg)
	sentry.FinishSpan(span, err)
	p.metrics.IncPublish(string(p.backend), err)

	if err != nil {
		log.Errorw("failed to publish claim event",
			"error", err,
			"message_id", msg.UUID,
			"event_name", env.EventName,
			"claim_id", env.ClaimID,
		)
		if ierr.IsNotification(err) {
			return err
		}
		return ierr.WithError(err).
			WithHint("Failed to publish claim event").
			Mark(ierr.ErrNotification)
	}

	log.Infow("successfully published claim event",
		"message_id", msg.UUID,
		"event_name", env.EventName,
		"claim_id", env.ClaimID,
	)
	return nil
}

func (p *claimPublisher) Close() error {
	return p.pubSub.Close()
}
