//go:build integration

package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	"github.com/claimsdesk/claims-service/internal/domain/document"
	"github.com/claimsdesk/claims-service/internal/domain/notification"
	"github.com/claimsdesk/claims-service/internal/domain/policy"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/postgres"
	"github.com/claimsdesk/claims-service/internal/repository"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type PostgresSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	db        *postgres.DB
	repos     *repository.Repositories
}

func TestPostgresRepositories(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("claims"),
		tcpostgres.WithUsername("claims"),
		tcpostgres.WithPassword("claims"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err, "failed to start postgres container")
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	conn, err := sqlx.Connect("postgres", dsn)
	s.Require().NoError(err)

	log := logger.NewNoopLogger()
	s.db = postgres.NewFromSQLX(conn, log)

	applied, err := s.db.Migrate(ctx, "")
	s.Require().NoError(err)
	s.NotEmpty(applied)

	// a second run finds nothing left to apply
	again, err := s.db.Migrate(ctx, "")
	s.Require().NoError(err)
	s.Empty(again)

	s.repos = repository.NewPostgresRepositories(s.db, log)
}

func (s *PostgresSuite) TearDownSuite() {
	if s.repos != nil {
		s.repos.Close()
	}
	if err := testcontainers.TerminateContainer(s.container); err != nil {
		s.T().Logf("failed to terminate postgres container: %v", err)
	}
}

func (s *PostgresSuite) SetupTest() {
	s.ctx = types.SetUserID(context.Background(), "usr_integration")
	_, err := s.db.ExecContext(s.ctx,
		`TRUNCATE claim_notifications, documents, claims, policies, claimants`)
	s.Require().NoError(err)
}

func (s *PostgresSuite) newClaimant(email string) *claimant.Claimant {
	return &claimant.Claimant{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        email,
		ConfirmEmail: email,
		Phone:        "+1 555 0199",
	}
}

func (s *PostgresSuite) newPolicy(claimantID, number string) *policy.Policy {
	start := types.NewDate(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	return &policy.Policy{
		ClaimantID:     claimantID,
		PolicyNumber:   number,
		PolicyType:     "Auto",
		EffectiveDate:  start,
		ExpirationDate: start.AddYears(1),
	}
}

func (s *PostgresSuite) TestSeededStatuses() {
	status, err := s.repos.ClaimStatusRepo.GetByName(s.ctx, "SUBMITTED")
	s.Require().NoError(err)
	s.Equal(types.ClaimStatusSubmitted, status.StatusName)
}

func (s *PostgresSuite) TestRollback() {
	c := s.newClaimant("rollback@example.com")
	boom := errors.New("boom")

	err := s.db.WithTx(s.ctx, func(txCtx context.Context) error {
		if err := s.repos.ClaimantRepo.Create(txCtx, c); err != nil {
			return err
		}
		if err := s.repos.PolicyRepo.Create(txCtx, s.newPolicy(c.ID, "RB-1")); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.repos.ClaimantRepo.Get(s.ctx, c.ID, true)
	s.True(ierr.IsNotFound(err))
}

func (s *PostgresSuite) TestPolicyNumberUniquePerClaimant() {
	c := s.newClaimant("unique@example.com")
	s.Require().NoError(s.repos.ClaimantRepo.Create(s.ctx, c))

	first := s.newPolicy(c.ID, "UQ-1")
	s.Require().NoError(s.repos.PolicyRepo.Create(s.ctx, first))

	err := s.repos.PolicyRepo.Create(s.ctx, s.newPolicy(c.ID, "UQ-1"))
	s.True(ierr.IsAlreadyExists(err))

	// the index only covers live rows
	s.Require().NoError(s.repos.PolicyRepo.Delete(s.ctx, first.ID))
	s.NoError(s.repos.PolicyRepo.Create(s.ctx, s.newPolicy(c.ID, "UQ-1")))
}

func (s *PostgresSuite) TestMissingClaimantIsRejected() {
	err := s.repos.PolicyRepo.Create(s.ctx, s.newPolicy("cla_missing", "FK-1"))
	s.Require().Error(err)
	s.True(ierr.IsConflict(err))
}

func (s *PostgresSuite) TestDocumentsCascadeWithClaim() {
	status, err := s.repos.ClaimStatusRepo.GetByName(s.ctx, types.ClaimStatusSubmitted)
	s.Require().NoError(err)

	c := s.newClaimant("cascade@example.com")
	p := s.newPolicy("", "CS-1")
	cl := &claim.Claim{
		Description:      "Hail damage on the roof",
		Amount:           decimal.RequireFromString("980.00"),
		DateOfIncident:   types.NewDate(time.Now().UTC().AddDate(0, 0, -1)),
		IncidentLocation: "Denver",
		StatusID:         status.ID,
	}

	err = s.db.WithTx(s.ctx, func(txCtx context.Context) error {
		if err := s.repos.ClaimantRepo.Create(txCtx, c); err != nil {
			return err
		}
		p.ClaimantID = c.ID
		if err := s.repos.PolicyRepo.Create(txCtx, p); err != nil {
			return err
		}
		cl.ClaimantID, cl.PolicyID = c.ID, p.ID
		if err := s.repos.ClaimRepo.Create(txCtx, cl); err != nil {
			return err
		}
		return s.repos.DocumentRepo.Create(txCtx, &document.Document{
			ClaimID:  cl.ID,
			FileName: "roof.jpg",
			FilePath: "/uploads/roof.jpg",
			FileType: "image/jpeg",
		})
	})
	s.Require().NoError(err)

	filter := types.NewDocumentFilter()
	filter.ClaimID = cl.ID
	docs, err := s.repos.DocumentRepo.List(s.ctx, filter)
	s.Require().NoError(err)
	s.Len(docs, 1)

	_, err = s.db.ExecContext(s.ctx, `DELETE FROM claims WHERE id = $1`, cl.ID)
	s.Require().NoError(err)

	filter.IncludeDeleted = true
	docs, err = s.repos.DocumentRepo.List(s.ctx, filter)
	s.Require().NoError(err)
	s.Empty(docs)
}

func (s *PostgresSuite) TestClaimDueLeasesEachEntryOnce() {
	status, err := s.repos.ClaimStatusRepo.GetByName(s.ctx, types.ClaimStatusSubmitted)
	s.Require().NoError(err)

	c := s.newClaimant("outbox@example.com")
	s.Require().NoError(s.repos.ClaimantRepo.Create(s.ctx, c))
	p := s.newPolicy(c.ID, "OB-1")
	s.Require().NoError(s.repos.PolicyRepo.Create(s.ctx, p))
	cl := &claim.Claim{
		Description:      "Burst pipe",
		Amount:           decimal.RequireFromString("120.00"),
		DateOfIncident:   types.NewDate(time.Now().UTC().AddDate(0, 0, -1)),
		IncidentLocation: "Leeds",
		ClaimantID:       c.ID,
		PolicyID:         p.ID,
		StatusID:         status.ID,
	}
	s.Require().NoError(s.repos.ClaimRepo.Create(s.ctx, cl))

	past := time.Now().UTC().Add(-time.Minute)
	for range 5 {
		s.Require().NoError(s.repos.NotificationRepo.Create(s.ctx, &notification.Notification{
			ClaimID:       cl.ID,
			Destination:   "claims_submitted",
			EventName:     "claim.submitted",
			Payload:       []byte(`{}`),
			State:         types.NotificationStatePending,
			NextAttemptAt: past,
		}))
	}

	now := time.Now().UTC()
	seen := make(map[string]int)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claimed, err := s.repos.NotificationRepo.ClaimDue(s.ctx, now, now.Add(time.Minute), 2)
			s.NoError(err)

			mu.Lock()
			defer mu.Unlock()
			for _, n := range claimed {
				seen[n.ID]++
				s.WithinDuration(now.Add(time.Minute), n.NextAttemptAt, time.Second)
			}
		}()
	}
	wg.Wait()

	// passes may skip rows locked by a sibling; a later pass picks those up
	rest, err := s.repos.NotificationRepo.ClaimDue(s.ctx, now, now.Add(time.Minute), 10)
	s.Require().NoError(err)
	for _, n := range rest {
		seen[n.ID]++
	}

	s.Len(seen, 5)
	for id, count := range seen {
		s.Equal(1, count, "entry %s leased more than once", id)
	}

	left, err := s.repos.NotificationRepo.ClaimDue(s.ctx, now, now.Add(time.Minute), 10)
	s.Require().NoError(err)
	s.Empty(left)
}
