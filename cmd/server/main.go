package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/claimsdesk/claims-service/internal/api"
	"github.com/claimsdesk/claims-service/internal/api/cron"
	v1 "github.com/claimsdesk/claims-service/internal/api/v1"
	"github.com/claimsdesk/claims-service/internal/cache"
	"github.com/claimsdesk/claims-service/internal/config"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/metrics"
	"github.com/claimsdesk/claims-service/internal/publisher"
	"github.com/claimsdesk/claims-service/internal/repository"
	"github.com/claimsdesk/claims-service/internal/security"
	"github.com/claimsdesk/claims-service/internal/sentry"
	"github.com/claimsdesk/claims-service/internal/service"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/claimsdesk/claims-service/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	_ "github.com/claimsdesk/claims-service/docs/swagger"
)

// @title Claims Service API
// @version 1.0
// @description Claim intake and management for insurance claimants and policies
// @BasePath /api/v1
// @schemes http https

const shutdownTimeout = 15 * time.Second

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,
			metrics.NewRegistry,
			provideMetrics,

			// Cache
			cache.NewInMemoryCache,

			// Secrets
			provideEncryption,

			// Storage
			repository.NewRepositories,

			// Messaging
			publisher.NewPubSub,
			publisher.NewClaimPublisher,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewClaimantService,
			service.NewPolicyService,
			service.NewClaimStatusService,
			service.NewClaimService,
			service.NewNotificationService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			registerValidator,
			sentry.RegisterHooks,
			registerShutdown,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func registerValidator() {
	validator.NewValidator()
}

func provideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}

// provideEncryption returns nil when no key is configured; claimant card
// details are then rejected instead of stored.
func provideEncryption(cfg *config.Configuration, log *logger.Logger) (security.EncryptionService, error) {
	if cfg.Secrets.EncryptionKey == "" {
		log.Warnw("secrets.encryption_key is not set, claimant card details will be rejected")
		return nil, nil
	}
	return security.NewEncryptionService(cfg, log)
}

func provideHandlers(
	logger *logger.Logger,
	claimService service.ClaimService,
	claimantService service.ClaimantService,
	policyService service.PolicyService,
	claimStatusService service.ClaimStatusService,
	notificationService service.NotificationService,
) api.Handlers {
	return api.Handlers{
		Health:           v1.NewHealthHandler(logger),
		Claim:            v1.NewClaimHandler(claimService, notificationService, logger),
		Claimant:         v1.NewClaimantHandler(claimantService, logger),
		Policy:           v1.NewPolicyHandler(policyService, logger),
		ClaimStatus:      v1.NewClaimStatusHandler(claimStatusService, logger),
		CronNotification: cron.NewNotificationHandler(notificationService, logger),
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	sentryService *sentry.Service,
	m *metrics.Metrics,
	registry *prometheus.Registry,
) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, sentryService, m, registry)
}

// registerShutdown releases the broker and database connections once
// everything that uses them has stopped
func registerShutdown(
	lc fx.Lifecycle,
	repos *repository.Repositories,
	claimPublisher publisher.ClaimPublisher,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing publisher and storage")
			err := claimPublisher.Close()
			repos.Close()
			return err
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	notificationService service.NotificationService,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startOutboxRelay(lc, notificationService, cfg, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeRelay:
		startOutboxRelay(lc, notificationService, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}

// startOutboxRelay periodically republishes claim events that could not be
// delivered at submission time
func startOutboxRelay(
	lc fx.Lifecycle,
	notificationService service.NotificationService,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	outbox := cfg.Messaging.Outbox
	if !outbox.Enabled || outbox.Interval <= 0 {
		log.Info("outbox relay is disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Infow("starting outbox relay", "interval", outbox.Interval)
			go func() {
				defer close(done)
				ticker := time.NewTicker(outbox.Interval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						result, err := notificationService.RelayPending(ctx)
						if err != nil {
							log.Errorw("outbox relay pass failed", "error", err)
							continue
						}
						if result.Processed > 0 {
							log.Infow("outbox relay pass finished",
								"processed", result.Processed,
								"sent", result.Sent,
								"failed", result.Failed,
							)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			log.Info("stopping outbox relay")
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
