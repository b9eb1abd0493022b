package types

type RunMode string

const (
	// ModeLocal runs the API server and the outbox relay together
	ModeLocal RunMode = "local"
	// ModeAPI runs just the API server
	ModeAPI RunMode = "api"
	// ModeRelay runs just the outbox relay
	ModeRelay RunMode = "relay"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// StorageBackend selects the repository implementation wired at startup
type StorageBackend string

const (
	StorageBackendPostgres StorageBackend = "postgres"
	StorageBackendMemory   StorageBackend = "memory"
)

// PubSubType defines the type of pubsub implementation
type PubSubType string

const (
	// MemoryPubSub uses in-memory implementation
	MemoryPubSub PubSubType = "memory"

	// KafkaPubSub uses Kafka implementation
	KafkaPubSub PubSubType = "kafka"

	// RabbitMQPubSub publishes to a RabbitMQ queue on the default exchange
	RabbitMQPubSub PubSubType = "rabbitmq"
)
