package kafka

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/claimsdesk/claims-service/internal/config"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/pubsub"
)

// Publisher sends claim events to Kafka topics
type Publisher struct {
	publisher message.Publisher
	logger    *logger.Logger
}

// NewPublisher connects a watermill-kafka publisher to messaging.kafka.brokers
func NewPublisher(cfg *config.Configuration, logger *logger.Logger) (pubsub.Publisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:               cfg.Messaging.Kafka.Brokers,
			Marshaler:             kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: GetSaramaConfig(cfg),
		},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to Kafka").
			Mark(ierr.ErrNotification)
	}

	return &Publisher{publisher: publisher, logger: logger}, nil
}

func (p *Publisher) Publish(ctx context.Context, topic string, msg *message.Message) error {
	msg.SetContext(ctx)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to publish message to topic %s", topic).
			Mark(ierr.ErrNotification)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.publisher.Close()
}
