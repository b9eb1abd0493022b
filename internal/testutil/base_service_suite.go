package testutil

import (
	"context"
	"time"

	"github.com/claimsdesk/claims-service/internal/cache"
	"github.com/claimsdesk/claims-service/internal/config"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/metrics"
	"github.com/claimsdesk/claims-service/internal/publisher"
	"github.com/claimsdesk/claims-service/internal/repository"
	"github.com/claimsdesk/claims-service/internal/repository/memory"
	"github.com/claimsdesk/claims-service/internal/security"
	"github.com/claimsdesk/claims-service/internal/sentry"
	"github.com/claimsdesk/claims-service/internal/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

const testEncryptionKey = "test-encryption-key-for-unit-tests-only"

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx            context.Context
	store          *memory.Store
	repos          *repository.Repositories
	pubSub         *InMemoryPubSub
	claimPublisher publisher.ClaimPublisher
	encryption     security.EncryptionService
	cache          cache.Cache
	metrics        *metrics.Metrics
	sentry         *sentry.Service
	logger         *logger.Logger
	config         *config.Configuration
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Secrets.EncryptionKey = testEncryptionKey
	// keep relay retries fast and outbox entries due immediately in tests
	cfg.Messaging.Outbox.Interval = time.Millisecond
	cfg.Messaging.Outbox.Lease = time.Millisecond
	cfg.Messaging.Outbox.MaxAttempts = 3
	cfg.Messaging.Outbox.RatePerSec = 0
	s.config = cfg
	s.logger = logger.NewNoopLogger()

	var err error
	s.encryption, err = security.NewEncryptionService(cfg, s.logger)
	if err != nil {
		s.T().Fatalf("failed to create encryption service: %v", err)
	}
	s.sentry = sentry.NewSentryService(cfg, s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.store = memory.NewStore(s.logger)
	s.repos = repository.NewMemoryRepositories(s.store)
	s.pubSub = NewInMemoryPubSub()
	s.cache = cache.NewInMemoryCache(s.config)
	// a fresh registry per test keeps counters independent
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.claimPublisher = publisher.NewClaimPublisher(s.pubSub, s.config, s.logger, s.metrics, s.sentry)
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.store.Reset()
	s.pubSub.ClearMessages()
	s.cache.Flush(s.ctx)
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStore returns the in-memory backend behind every repository
func (s *BaseServiceTestSuite) GetStore() *memory.Store {
	return s.store
}

// GetRepositories returns all test repositories
func (s *BaseServiceTestSuite) GetRepositories() *repository.Repositories {
	return s.repos
}

// GetPubSub returns the recording broker
func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubSub
}

func (s *BaseServiceTestSuite) GetClaimPublisher() publisher.ClaimPublisher {
	return s.claimPublisher
}

func (s *BaseServiceTestSuite) GetEncryption() security.EncryptionService {
	return s.encryption
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetMetrics() *metrics.Metrics {
	return s.metrics
}

func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}
