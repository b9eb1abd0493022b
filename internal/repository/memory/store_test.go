package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	"github.com/claimsdesk/claims-service/internal/domain/document"
	"github.com/claimsdesk/claims-service/internal/domain/policy"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	ctx       context.Context
	store     *Store
	claimants claimant.Repository
	policies  policy.Repository
}

func TestStore(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = types.SetUserID(context.Background(), "usr_test")
	s.store = NewStore(logger.NewNoopLogger())
	s.claimants = NewClaimantRepository(s.store)
	s.policies = NewPolicyRepository(s.store)
}

func (s *StoreSuite) newClaimant(email string) *claimant.Claimant {
	return &claimant.Claimant{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		ConfirmEmail: email,
		Phone:        "555",
	}
}

func (s *StoreSuite) TestSeedsDefaultStatuses() {
	s.Equal(len(types.DefaultClaimStatuses), s.store.ClaimStatuses.Len())

	s.store.SeedStatuses()
	s.Equal(len(types.DefaultClaimStatuses), s.store.ClaimStatuses.Len())
}

func (s *StoreSuite) TestCommit() {
	c := s.newClaimant("a@example.com")
	err := s.store.WithTx(s.ctx, func(txCtx context.Context) error {
		return s.claimants.Create(txCtx, c)
	})
	s.Require().NoError(err)

	got, err := s.claimants.Get(s.ctx, c.ID, false)
	s.Require().NoError(err)
	s.Equal("a@example.com", got.Email)
	s.Equal("usr_test", got.CreatedBy)
}

func (s *StoreSuite) TestRollbackUndoesEveryWrite() {
	existing := s.newClaimant("keep@example.com")
	s.Require().NoError(s.claimants.Create(s.ctx, existing))

	boom := errors.New("boom")
	err := s.store.WithTx(s.ctx, func(txCtx context.Context) error {
		if err := s.claimants.Create(txCtx, s.newClaimant("b@example.com")); err != nil {
			return err
		}
		updated := *existing
		updated.City = "Paris"
		if err := s.claimants.Update(txCtx, &updated); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	s.Equal(1, s.store.Claimants.Len())
	got, err := s.claimants.Get(s.ctx, existing.ID, false)
	s.Require().NoError(err)
	s.Empty(got.City)
}

func (s *StoreSuite) TestNestedRollbackReachesOuterWrites() {
	err := s.store.WithTx(s.ctx, func(txCtx context.Context) error {
		if err := s.store.WithTx(txCtx, func(inner context.Context) error {
			return s.claimants.Create(inner, s.newClaimant("inner@example.com"))
		}); err != nil {
			return err
		}
		return errors.New("outer failed")
	})
	s.Error(err)
	s.Zero(s.store.Claimants.Len())
}

func (s *StoreSuite) TestReturnsCopies() {
	c := s.newClaimant("copy@example.com")
	s.Require().NoError(s.claimants.Create(s.ctx, c))

	got, err := s.claimants.Get(s.ctx, c.ID, false)
	s.Require().NoError(err)
	got.Email = "changed@example.com"

	again, err := s.claimants.Get(s.ctx, c.ID, false)
	s.Require().NoError(err)
	s.Equal("copy@example.com", again.Email)
}

func (s *StoreSuite) TestPolicyConstraints() {
	_, err := s.policies.GetByClaimantAndNumber(s.ctx, "cla_none", "P-1")
	s.True(ierr.IsNotFound(err))

	err = s.policies.Create(s.ctx, &policy.Policy{ClaimantID: "cla_none", PolicyNumber: "P-1"})
	s.Error(err)

	holder := s.newClaimant("holder@example.com")
	s.Require().NoError(s.claimants.Create(s.ctx, holder))

	s.Require().NoError(s.policies.Create(s.ctx, &policy.Policy{ClaimantID: holder.ID, PolicyNumber: "P-1"}))
	err = s.policies.Create(s.ctx, &policy.Policy{ClaimantID: holder.ID, PolicyNumber: "P-1"})
	s.True(ierr.IsAlreadyExists(err))
}

func (s *StoreSuite) TestPolicyRejectsDeletedClaimant() {
	holder := s.newClaimant("former@example.com")
	s.Require().NoError(s.claimants.Create(s.ctx, holder))
	s.Require().NoError(s.claimants.Delete(s.ctx, holder.ID))

	err := s.policies.Create(s.ctx, &policy.Policy{ClaimantID: holder.ID, PolicyNumber: "P-2"})
	s.Require().Error(err)
	s.True(ierr.IsConflict(err))
	s.Zero(s.store.Policies.Len())
}

func (s *StoreSuite) TestClaimRejectsDeletedReferences() {
	claims := NewClaimRepository(s.store)
	documents := NewDocumentRepository(s.store)

	holder := s.newClaimant("refs@example.com")
	s.Require().NoError(s.claimants.Create(s.ctx, holder))
	p := &policy.Policy{ClaimantID: holder.ID, PolicyNumber: "P-3"}
	s.Require().NoError(s.policies.Create(s.ctx, p))
	status, ok := s.store.ClaimStatuses.Find(func(cs *claimstatus.ClaimStatus) bool { return true })
	s.Require().True(ok)

	newClaim := func() *claim.Claim {
		return &claim.Claim{ClaimantID: holder.ID, PolicyID: p.ID, StatusID: status.ID}
	}
	live := newClaim()
	s.Require().NoError(claims.Create(s.ctx, live))

	s.Require().NoError(s.policies.Delete(s.ctx, p.ID))
	err := claims.Create(s.ctx, newClaim())
	s.Require().Error(err)
	s.True(ierr.IsConflict(err))

	s.Require().NoError(claims.Delete(s.ctx, live.ID))
	err = documents.Create(s.ctx, &document.Document{ClaimID: live.ID, FileName: "late.pdf"})
	s.Require().Error(err)
	s.True(ierr.IsConflict(err))
	s.Zero(s.store.Documents.Len())
}

func (s *StoreSuite) TestSoftDelete() {
	c := s.newClaimant("gone@example.com")
	s.Require().NoError(s.claimants.Create(s.ctx, c))
	s.Require().NoError(s.claimants.Delete(s.ctx, c.ID))

	_, err := s.claimants.Get(s.ctx, c.ID, false)
	s.True(ierr.IsNotFound(err))

	deleted, err := s.claimants.Get(s.ctx, c.ID, true)
	s.Require().NoError(err)
	s.True(deleted.IsDeleted)

	s.True(ierr.IsNotFound(s.claimants.Delete(s.ctx, c.ID)))
}
