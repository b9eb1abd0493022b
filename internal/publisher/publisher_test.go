package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/claimsdesk/claims-service/internal/config"
	"github.com/claimsdesk/claims-service/internal/domain/claim"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/pubsub/memory"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type brokenPubSub struct{}

func (brokenPubSub) Publish(context.Context, string, *message.Message) error {
	return errors.New("connection refused")
}

func (brokenPubSub) Close() error { return nil }

type ClaimPublisherSuite struct {
	suite.Suite
	cfg *config.Configuration
	ctx context.Context
}

func TestClaimPublisher(t *testing.T) {
	suite.Run(t, new(ClaimPublisherSuite))
}

func (s *ClaimPublisherSuite) SetupTest() {
	s.cfg = config.GetDefaultConfig()
	s.ctx = types.SetRequestID(context.Background(), "req-123")
}

func (s *ClaimPublisherSuite) event() *claim.SubmittedEvent {
	return &claim.SubmittedEvent{
		ClaimID:      "clm_01",
		Description:  "Rear bumper damaged in parking lot",
		Amount:       types.NewAmount(decimal.RequireFromString("1250.5")),
		PolicyNumber: "PN-1001",
	}
}

func (s *ClaimPublisherSuite) TestPublishClaimSubmitted() {
	ps := memory.NewPubSub(logger.NewNoopLogger())
	p := NewClaimPublisher(ps, s.cfg, logger.NewNoopLogger(), nil, nil)

	s.Require().NoError(p.PublishClaimSubmitted(s.ctx, s.event()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := ps.Subscribe(ctx, s.cfg.Messaging.ClaimsSubmittedDestination)
	s.Require().NoError(err)

	select {
	case msg := <-messages:
		s.Equal(types.EventClaimSubmitted, msg.Metadata.Get("event_name"))
		s.Equal("clm_01", msg.Metadata.Get("claim_id"))
		s.Equal("req-123", msg.Metadata.Get("request_id"))

		var body map[string]any
		s.Require().NoError(json.Unmarshal(msg.Payload, &body))
		s.Equal("clm_01", body["claimId"])
		s.Equal("1250.50", body["amount"])
		s.Equal("PN-1001", body["policyNumber"])
		msg.Ack()
	case <-ctx.Done():
		s.Fail("event was not delivered")
	}
}

func (s *ClaimPublisherSuite) TestPublishFailureIsNotificationError() {
	p := NewClaimPublisher(brokenPubSub{}, s.cfg, logger.NewNoopLogger(), nil, nil)

	err := p.PublishClaimSubmitted(s.ctx, s.event())
	s.Require().Error(err)
	s.True(ierr.IsNotification(err))
}

func TestNewPubSubRejectsUnknownBackend(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Messaging.Backend = "carrier-pigeon"

	_, err := NewPubSub(cfg, logger.NewNoopLogger())
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
