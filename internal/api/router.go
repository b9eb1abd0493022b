package api

import (
	"github.com/claimsdesk/claims-service/internal/api/cron"
	v1 "github.com/claimsdesk/claims-service/internal/api/v1"
	"github.com/claimsdesk/claims-service/internal/config"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/metrics"
	"github.com/claimsdesk/claims-service/internal/rest/middleware"
	"github.com/claimsdesk/claims-service/internal/sentry"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Claim       *v1.ClaimHandler
	Claimant    *v1.ClaimantHandler
	Policy      *v1.PolicyHandler
	ClaimStatus *v1.ClaimStatusHandler

	CronNotification *cron.NotificationHandler
}

func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	log *logger.Logger,
	sentryService *sentry.Service,
	m *metrics.Metrics,
	registry *prometheus.Registry,
) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg),
		middleware.SentryMiddleware(cfg),
		middleware.MetricsMiddleware(m),
		middleware.ErrorHandler(log, sentryService),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1Group := router.Group("/api/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	claims := router.Group("/claims")
	{
		claims.POST("", handlers.Claim.SubmitClaim)
		claims.GET("", handlers.Claim.ListClaims)
		claims.GET("/:id", handlers.Claim.GetClaim)
		claims.DELETE("/:id", handlers.Claim.DeleteClaim)
		claims.GET("/:id/documents", handlers.Claim.ListDocuments)
		claims.POST("/:id/documents", handlers.Claim.AttachDocument)
		claims.POST("/:id/notifications/replay", handlers.Claim.ReplayNotification)
	}

	claimants := router.Group("/claimant")
	{
		claimants.GET("", handlers.Claimant.ListClaimants)
		claimants.POST("", handlers.Claimant.CreateClaimant)
		claimants.GET("/:id", handlers.Claimant.GetClaimant)
		claimants.PUT("/:id", handlers.Claimant.UpdateClaimant)
		claimants.DELETE("/:id", handlers.Claimant.DeleteClaimant)
	}

	policies := router.Group("/policy")
	{
		policies.GET("", handlers.Policy.ListPolicies)
		policies.POST("", handlers.Policy.CreatePolicy)
		policies.GET("/basic/:id", handlers.Policy.GetPolicy)
		policies.GET("/details/:id", handlers.Policy.GetPolicyDetails)
		policies.PUT("/:id", handlers.Policy.UpdatePolicy)
		policies.DELETE("/:id", handlers.Policy.DeletePolicy)
	}

	statuses := router.Group("/claim-statuses")
	{
		statuses.GET("", handlers.ClaimStatus.ListClaimStatuses)
		statuses.POST("", handlers.ClaimStatus.CreateClaimStatus)
		statuses.DELETE("/:id", handlers.ClaimStatus.DeleteClaimStatus)
	}

	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/notifications/relay", handlers.CronNotification.RelayPending)
	}
}
