package kafka

import (
	"time"

	"github.com/Shopify/sarama"
	"github.com/claimsdesk/claims-service/internal/config"
)

// GetSaramaConfig returns a sync producer config that waits for all in-sync replicas
func GetSaramaConfig(cfg *config.Configuration) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_1_0_0
	saramaConfig.ClientID = cfg.Messaging.Kafka.ClientID

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Retry.Backoff = 250 * time.Millisecond
	saramaConfig.Producer.Timeout = 10 * time.Second

	return saramaConfig
}
