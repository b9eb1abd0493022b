package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Logging    LoggingConfig    `mapstructure:"logging" validate:"required"`
	Storage    StorageConfig    `mapstructure:"storage" validate:"required"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	Messaging  MessagingConfig  `mapstructure:"messaging" validate:"required"`
	Claims     ClaimsConfig     `mapstructure:"claims" validate:"required"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required,oneof=local api relay"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
	// AllowedOrigins is a ';' separated list of CORS origins, "*" allows any
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type StorageConfig struct {
	Backend types.StorageBackend `mapstructure:"backend" validate:"required,oneof=postgres memory"`
}

type PostgresConfig struct {
	Host                   string        `mapstructure:"host"`
	Port                   int           `mapstructure:"port"`
	User                   string        `mapstructure:"user"`
	Password               string        `mapstructure:"password"`
	DBName                 string        `mapstructure:"dbname"`
	SSLMode                string        `mapstructure:"sslmode"`
	Schema                 string        `mapstructure:"schema"`
	MaxOpenConns           int           `mapstructure:"max_open_conns"`
	MaxIdleConns           int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int           `mapstructure:"conn_max_lifetime_minutes"`
	AutoMigrate            bool          `mapstructure:"auto_migrate"`
	StatementTimeout       time.Duration `mapstructure:"statement_timeout"`
}

type MessagingConfig struct {
	Backend                    types.PubSubType `mapstructure:"backend" validate:"required,oneof=memory kafka rabbitmq"`
	ClaimsSubmittedDestination string           `mapstructure:"claims_submitted_destination" validate:"required"`
	RabbitMQ                   RabbitMQConfig   `mapstructure:"rabbitmq"`
	Kafka                      KafkaConfig      `mapstructure:"kafka"`
	Outbox                     OutboxConfig     `mapstructure:"outbox"`
}

type RabbitMQConfig struct {
	URL            string        `mapstructure:"url"`
	DurableQueue   bool          `mapstructure:"durable_queue"`
	ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`
}

type KafkaConfig struct {
	Brokers  []string `mapstructure:"brokers"`
	ClientID string   `mapstructure:"client_id"`
}

type OutboxConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Interval    time.Duration `mapstructure:"interval"`
	// Lease is how long a relay pass owns the entries it picked up
	Lease       time.Duration `mapstructure:"lease"`
	BatchSize   int           `mapstructure:"batch_size"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	Concurrency int           `mapstructure:"concurrency"`
	RatePerSec  float64       `mapstructure:"rate_per_sec"`
}

type ClaimsConfig struct {
	DefaultStatus  string        `mapstructure:"default_status" validate:"required"`
	StatusCacheTTL time.Duration `mapstructure:"status_cache_ttl"`
}

type SecretsConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional; real environment variables still win over it
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/claims-service")

	v.SetEnvPrefix("CLAIMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
		fmt.Printf("No config file found, using defaults and environment\n")
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override it without a config file
func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("postgres.host", d.Postgres.Host)
	v.SetDefault("postgres.port", d.Postgres.Port)
	v.SetDefault("postgres.user", d.Postgres.User)
	v.SetDefault("postgres.password", d.Postgres.Password)
	v.SetDefault("postgres.dbname", d.Postgres.DBName)
	v.SetDefault("postgres.sslmode", d.Postgres.SSLMode)
	v.SetDefault("postgres.schema", d.Postgres.Schema)
	v.SetDefault("postgres.max_open_conns", d.Postgres.MaxOpenConns)
	v.SetDefault("postgres.max_idle_conns", d.Postgres.MaxIdleConns)
	v.SetDefault("postgres.conn_max_lifetime_minutes", d.Postgres.ConnMaxLifetimeMinutes)
	v.SetDefault("postgres.auto_migrate", d.Postgres.AutoMigrate)
	v.SetDefault("postgres.statement_timeout", d.Postgres.StatementTimeout)
	v.SetDefault("messaging.backend", d.Messaging.Backend)
	v.SetDefault("messaging.claims_submitted_destination", d.Messaging.ClaimsSubmittedDestination)
	v.SetDefault("messaging.rabbitmq.url", d.Messaging.RabbitMQ.URL)
	v.SetDefault("messaging.rabbitmq.durable_queue", d.Messaging.RabbitMQ.DurableQueue)
	v.SetDefault("messaging.rabbitmq.confirm_timeout", d.Messaging.RabbitMQ.ConfirmTimeout)
	v.SetDefault("messaging.kafka.brokers", d.Messaging.Kafka.Brokers)
	v.SetDefault("messaging.kafka.client_id", d.Messaging.Kafka.ClientID)
	v.SetDefault("messaging.outbox.enabled", d.Messaging.Outbox.Enabled)
	v.SetDefault("messaging.outbox.interval", d.Messaging.Outbox.Interval)
	v.SetDefault("messaging.outbox.lease", d.Messaging.Outbox.Lease)
	v.SetDefault("messaging.outbox.batch_size", d.Messaging.Outbox.BatchSize)
	v.SetDefault("messaging.outbox.max_attempts", d.Messaging.Outbox.MaxAttempts)
	v.SetDefault("messaging.outbox.concurrency", d.Messaging.Outbox.Concurrency)
	v.SetDefault("messaging.outbox.rate_per_sec", d.Messaging.Outbox.RatePerSec)
	v.SetDefault("claims.default_status", d.Claims.DefaultStatus)
	v.SetDefault("claims.status_cache_ttl", d.Claims.StatusCacheTTL)
	v.SetDefault("secrets.encryption_key", d.Secrets.EncryptionKey)
	v.SetDefault("sentry.enabled", d.Sentry.Enabled)
	v.SetDefault("sentry.dsn", d.Sentry.DSN)
	v.SetDefault("sentry.environment", d.Sentry.Environment)
	v.SetDefault("sentry.sample_rate", d.Sentry.SampleRate)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Storage.Backend == types.StorageBackendPostgres && c.Postgres.Host == "" {
		return fmt.Errorf("postgres.host is required when storage.backend is %q", c.Storage.Backend)
	}
	if c.Messaging.Backend == types.RabbitMQPubSub && c.Messaging.RabbitMQ.URL == "" {
		return fmt.Errorf("messaging.rabbitmq.url is required when messaging.backend is %q", c.Messaging.Backend)
	}
	if c.Messaging.Backend == types.KafkaPubSub && len(c.Messaging.Kafka.Brokers) == 0 {
		return fmt.Errorf("messaging.kafka.brokers is required when messaging.backend is %q", c.Messaging.Backend)
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server: ServerConfig{
			Address:        ":8080",
			AllowedOrigins: "*",
		},
		Logging: LoggingConfig{Level: types.LogLevelInfo},
		Storage: StorageConfig{Backend: types.StorageBackendMemory},
		Postgres: PostgresConfig{
			Port:                   5432,
			SSLMode:                "disable",
			Schema:                 "claims_service",
			MaxOpenConns:           20,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
		},
		Messaging: MessagingConfig{
			Backend:                    types.MemoryPubSub,
			ClaimsSubmittedDestination: types.DefaultClaimsSubmitted,
			RabbitMQ: RabbitMQConfig{
				ConfirmTimeout: 5 * time.Second,
			},
			Kafka: KafkaConfig{ClientID: "claims-service"},
			Outbox: OutboxConfig{
				Enabled:     true,
				Interval:    30 * time.Second,
				Lease:       2 * time.Minute,
				BatchSize:   50,
				MaxAttempts: 10,
				Concurrency: 4,
				RatePerSec:  20,
			},
		},
		Claims: ClaimsConfig{
			DefaultStatus:  types.ClaimStatusSubmitted,
			StatusCacheTTL: 10 * time.Minute,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	dsn := fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
	if c.Schema != "" {
		dsn += fmt.Sprintf(" search_path=%s", c.Schema)
	}
	if c.StatementTimeout > 0 {
		dsn += fmt.Sprintf(" statement_timeout=%d", c.StatementTimeout.Milliseconds())
	}
	return dsn
}

// GetAllowedOrigins splits the configured origin list
func (c ServerConfig) GetAllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ";") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
