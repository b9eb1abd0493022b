package publisher

import (
	"github.com/claimsdesk/claims-service/internal/config"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/pubsub"
	"github.com/claimsdesk/claims-service/internal/pubsub/kafka"
	"github.com/claimsdesk/claims-service/internal/pubsub/memory"
	"github.com/claimsdesk/claims-service/internal/pubsub/rabbitmq"
	"github.com/claimsdesk/claims-service/internal/types"
)

// NewPubSub opens the broker selected by messaging.backend
func NewPubSub(cfg *config.Configuration, logger *logger.Logger) (pubsub.Publisher, error) {
	switch cfg.Messaging.Backend {
	case types.RabbitMQPubSub:
		return rabbitmq.NewPublisher(cfg, logger)
	case types.KafkaPubSub:
		return kafka.NewPublisher(cfg, logger)
	case types.MemoryPubSub:
		return memory.NewPubSub(logger), nil
	default:
		return nil, ierr.NewErrorf("unsupported messaging backend %q", cfg.Messaging.Backend).
			WithHint("messaging.backend must be one of memory, kafka or rabbitmq").
			Mark(ierr.ErrValidation)
	}
}
