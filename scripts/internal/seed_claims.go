package internal

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/cache"
	"github.com/claimsdesk/claims-service/internal/config"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/metrics"
	"github.com/claimsdesk/claims-service/internal/publisher"
	"github.com/claimsdesk/claims-service/internal/repository"
	"github.com/claimsdesk/claims-service/internal/security"
	"github.com/claimsdesk/claims-service/internal/sentry"
	"github.com/claimsdesk/claims-service/internal/service"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/claimsdesk/claims-service/internal/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	defaultSeedCount = 25
	defaultSeedRate  = 5
)

var (
	firstNames = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Ken"}
	lastNames  = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Thompson"}
	locations  = []string{"Main Street, Springfield", "Harbor Road, Bristol", "5th Avenue, New York", "Ring Road, Leeds"}
	incidents  = []string{
		"Rear-ended while waiting at a red light",
		"Burst pipe flooded the kitchen overnight",
		"Hail storm cracked the windshield",
		"Laptop stolen from a parked car",
	}
)

// claimsRuntime is the service graph the scripts share
type claimsRuntime struct {
	log           *logger.Logger
	repos         *repository.Repositories
	publisher     publisher.ClaimPublisher
	claims        service.ClaimService
	notifications service.NotificationService
}

func newClaimsRuntime() (*claimsRuntime, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	validator.NewValidator()

	repos, err := repository.NewRepositories(cfg, log)
	if err != nil {
		return nil, err
	}
	pubSub, err := publisher.NewPubSub(cfg, log)
	if err != nil {
		repos.Close()
		return nil, err
	}

	var encryption security.EncryptionService
	if cfg.Secrets.EncryptionKey != "" {
		if encryption, err = security.NewEncryptionService(cfg, log); err != nil {
			repos.Close()
			return nil, err
		}
	}

	sentryService := sentry.NewSentryService(cfg, log)
	m := metrics.New(metrics.NewRegistry())
	claimPublisher := publisher.NewClaimPublisher(pubSub, cfg, log, m, sentryService)

	params := service.NewServiceParams(log, cfg, repos, claimPublisher, encryption,
		cache.NewInMemoryCache(cfg), m, sentryService)

	return &claimsRuntime{
		log:           log,
		repos:         repos,
		publisher:     claimPublisher,
		claims:        service.NewClaimService(params),
		notifications: service.NewNotificationService(params),
	}, nil
}

func (r *claimsRuntime) Close() {
	if err := r.publisher.Close(); err != nil {
		r.log.Warnw("failed to close publisher", "error", err)
	}
	r.repos.Close()
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func generateClaim(index int) dto.SubmitClaimRequest {
	first := firstNames[rand.Intn(len(firstNames))]
	last := lastNames[rand.Intn(len(lastNames))]
	email := fmt.Sprintf("%s.%s.%d@example.com", first, last, index)

	return dto.SubmitClaimRequest{
		Description:      incidents[rand.Intn(len(incidents))],
		Amount:           decimal.New(int64(10000+rand.Intn(990000)), -2),
		DateOfIncident:   types.NewDate(time.Now().UTC().AddDate(0, 0, -rand.Intn(60))),
		IncidentLocation: locations[rand.Intn(len(locations))],
		PolicyNumber:     fmt.Sprintf("SEED-%05d", index),
		Claimant: &dto.ClaimantRequest{
			FirstName:    first,
			LastName:     last,
			Email:        email,
			ConfirmEmail: email,
			Phone:        fmt.Sprintf("+1 555 %04d", index%10000),
		},
		Documents: []dto.DocumentRequest{
			{FileName: "photo.jpg", FilePath: fmt.Sprintf("/uploads/seed/%d/photo.jpg", index)},
		},
	}
}

// SeedClaims submits SEED_COUNT generated claims at SEED_RATE per second
func SeedClaims() error {
	rt, err := newClaimsRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	count := envInt("SEED_COUNT", defaultSeedCount)
	perSec := envInt("SEED_RATE", defaultSeedRate)
	rt.log.Infof("Submitting %d claims with rate limit of %d req/s", count, perSec)

	ctx := types.SetUserID(context.Background(), "seed-script")
	limiter := rate.NewLimiter(rate.Limit(perSec), 1)

	var (
		wg                       sync.WaitGroup
		submitted, pending, fail atomic.Int64
	)
	for i := range count {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := rt.claims.SubmitClaim(ctx, generateClaim(i))
			switch {
			case err == nil:
				submitted.Add(1)
			case ierr.IsNotification(err):
				pending.Add(1)
			default:
				fail.Add(1)
				rt.log.Errorw("failed to submit claim", "index", i, "error", err)
			}
		}()
	}
	wg.Wait()

	rt.log.Infow("seeding finished",
		"submitted", submitted.Load(),
		"notification_pending", pending.Load(),
		"failed", fail.Load(),
	)
	if fail.Load() > 0 {
		return fmt.Errorf("%d of %d submissions failed", fail.Load(), count)
	}
	return nil
}

// RelayOutbox runs a single relay pass, for use from cron when the service
// runs in api mode
func RelayOutbox() error {
	rt, err := newClaimsRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.notifications.RelayPending(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("processed=%d sent=%d failed=%d\n", result.Processed, result.Sent, result.Failed)
	return nil
}
