package service

import (
	"github.com/claimsdesk/claims-service/internal/cache"
	"github.com/claimsdesk/claims-service/internal/config"
	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	"github.com/claimsdesk/claims-service/internal/domain/document"
	"github.com/claimsdesk/claims-service/internal/domain/notification"
	"github.com/claimsdesk/claims-service/internal/domain/policy"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/metrics"
	"github.com/claimsdesk/claims-service/internal/postgres"
	"github.com/claimsdesk/claims-service/internal/publisher"
	"github.com/claimsdesk/claims-service/internal/repository"
	"github.com/claimsdesk/claims-service/internal/security"
	"github.com/claimsdesk/claims-service/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	ClaimantRepo     claimant.Repository
	PolicyRepo       policy.Repository
	ClaimRepo        claim.Repository
	ClaimStatusRepo  claimstatus.Repository
	DocumentRepo     document.Repository
	NotificationRepo notification.Repository

	// Publishers
	ClaimPublisher publisher.ClaimPublisher

	// Encryption seals claimant card fields. Nil when secrets.encryption_key
	// is unset, in which case card details are rejected.
	Encryption security.EncryptionService
	Cache      cache.Cache
	Metrics    *metrics.Metrics
	Sentry     *sentry.Service
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	repos *repository.Repositories,
	claimPublisher publisher.ClaimPublisher,
	encryption security.EncryptionService,
	cache cache.Cache,
	metrics *metrics.Metrics,
	sentry *sentry.Service,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		DB:               repos.DB,
		ClaimantRepo:     repos.ClaimantRepo,
		PolicyRepo:       repos.PolicyRepo,
		ClaimRepo:        repos.ClaimRepo,
		ClaimStatusRepo:  repos.ClaimStatusRepo,
		DocumentRepo:     repos.DocumentRepo,
		NotificationRepo: repos.NotificationRepo,
		ClaimPublisher:   claimPublisher,
		Encryption:       encryption,
		Cache:            cache,
		Metrics:          metrics,
		Sentry:           sentry,
	}
}
