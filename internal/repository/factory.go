package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/claimsdesk/claims-service/internal/config"
	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	"github.com/claimsdesk/claims-service/internal/domain/document"
	"github.com/claimsdesk/claims-service/internal/domain/notification"
	"github.com/claimsdesk/claims-service/internal/domain/policy"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/postgres"
	memoryRepo "github.com/claimsdesk/claims-service/internal/repository/memory"
	postgresRepo "github.com/claimsdesk/claims-service/internal/repository/postgres"
	"github.com/claimsdesk/claims-service/internal/types"
)

const migrateTimeout = 2 * time.Minute

// Repositories bundles the unit of work with every repository of one storage backend
type Repositories struct {
	DB               postgres.IClient
	ClaimantRepo     claimant.Repository
	PolicyRepo       policy.Repository
	ClaimRepo        claim.Repository
	ClaimStatusRepo  claimstatus.Repository
	DocumentRepo     document.Repository
	NotificationRepo notification.Repository

	close func()
}

// NewRepositories builds the backend named by storage.backend
func NewRepositories(cfg *config.Configuration, logger *logger.Logger) (*Repositories, error) {
	switch cfg.Storage.Backend {
	case types.StorageBackendPostgres:
		db, err := postgres.NewDB(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if cfg.Postgres.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
			defer cancel()
			if _, err := db.Migrate(ctx, cfg.Postgres.Schema); err != nil {
				db.Close()
				return nil, err
			}
		}
		return NewPostgresRepositories(db, logger), nil

	case types.StorageBackendMemory:
		logger.Warnw("using in-memory storage, data is lost on restart")
		return NewMemoryRepositories(memoryRepo.NewStore(logger)), nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}

func NewPostgresRepositories(db *postgres.DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		DB:               db,
		ClaimantRepo:     postgresRepo.NewClaimantRepository(db, logger),
		PolicyRepo:       postgresRepo.NewPolicyRepository(db, logger),
		ClaimRepo:        postgresRepo.NewClaimRepository(db, logger),
		ClaimStatusRepo:  postgresRepo.NewClaimStatusRepository(db, logger),
		DocumentRepo:     postgresRepo.NewDocumentRepository(db, logger),
		NotificationRepo: postgresRepo.NewNotificationRepository(db, logger),
		close:            db.Close,
	}
}

func NewMemoryRepositories(store *memoryRepo.Store) *Repositories {
	return &Repositories{
		DB:               store,
		ClaimantRepo:     memoryRepo.NewClaimantRepository(store),
		PolicyRepo:       memoryRepo.NewPolicyRepository(store),
		ClaimRepo:        memoryRepo.NewClaimRepository(store),
		ClaimStatusRepo:  memoryRepo.NewClaimStatusRepository(store),
		DocumentRepo:     memoryRepo.NewDocumentRepository(store),
		NotificationRepo: memoryRepo.NewNotificationRepository(store),
		close:            func() {},
	}
}

// Close releases the backend's connections
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}
