package service

import (
	"testing"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/cache"
	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/testutil"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/stretchr/testify/suite"
)

type ClaimStatusServiceSuite struct {
	testutil.BaseServiceTestSuite
	service      ClaimStatusService
	claimService ClaimService
}

func TestClaimStatusService(t *testing.T) {
	suite.Run(t, new(ClaimStatusServiceSuite))
}

func (s *ClaimStatusServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewClaimStatusService(params)
	s.claimService = NewClaimService(params)
}

func (s *ClaimStatusServiceSuite) TestListSeededStatuses() {
	resp, err := s.service.ListClaimStatuses(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Len(resp.Items, len(types.DefaultClaimStatuses))
}

func (s *ClaimStatusServiceSuite) TestCreateClaimStatus() {
	resp, err := s.service.CreateClaimStatus(s.GetContext(), dto.CreateClaimStatusRequest{StatusName: "Escalated"})
	s.Require().NoError(err)
	s.Equal("Escalated", resp.StatusName)

	_, err = s.service.CreateClaimStatus(s.GetContext(), dto.CreateClaimStatusRequest{StatusName: "escalated"})
	s.True(ierr.IsAlreadyExists(err))

	_, err = s.service.CreateClaimStatus(s.GetContext(), dto.CreateClaimStatusRequest{StatusName: "  "})
	s.True(ierr.IsValidation(err))
}

func (s *ClaimStatusServiceSuite) TestGetDefaultStatusIsCached() {
	status, err := s.service.GetDefaultStatus(s.GetContext())
	s.Require().NoError(err)
	s.Equal(types.ClaimStatusSubmitted, status.StatusName)

	key := cache.GenerateKey(cache.PrefixClaimStatusByName, "submitted")
	cached, found := s.GetCache().Get(s.GetContext(), key)
	s.Require().True(found)
	s.Equal(status.ID, cached.(*claimstatus.ClaimStatus).ID)
}

func (s *ClaimStatusServiceSuite) TestDeleteDefaultStatus() {
	status, err := s.service.GetDefaultStatus(s.GetContext())
	s.Require().NoError(err)

	err = s.service.DeleteClaimStatus(s.GetContext(), status.ID)
	s.True(ierr.IsInvalidOperation(err))
	s.Equal("The default claim status cannot be deleted", ierr.GetDisplayMessage(err))
}

func (s *ClaimStatusServiceSuite) TestDeleteStatusInUse() {
	submitted, err := s.claimService.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-1"))
	s.Require().NoError(err)
	stored, err := s.GetRepositories().ClaimRepo.Get(s.GetContext(), submitted.ClaimID, false)
	s.Require().NoError(err)

	// move the claim onto a custom status, then try to delete that status
	custom, err := s.service.CreateClaimStatus(s.GetContext(), dto.CreateClaimStatusRequest{StatusName: "On Hold"})
	s.Require().NoError(err)
	stored.StatusID = custom.StatusID
	s.Require().NoError(s.GetRepositories().ClaimRepo.Update(s.GetContext(), stored))

	err = s.service.DeleteClaimStatus(s.GetContext(), custom.StatusID)
	s.True(ierr.IsConflict(err))

	unused, err := s.service.CreateClaimStatus(s.GetContext(), dto.CreateClaimStatusRequest{StatusName: "Archived"})
	s.Require().NoError(err)
	s.NoError(s.service.DeleteClaimStatus(s.GetContext(), unused.StatusID))

	err = s.service.DeleteClaimStatus(s.GetContext(), unused.StatusID)
	s.True(ierr.IsNotFound(err))
}

func (s *ClaimStatusServiceSuite) TestMissingDefaultStatus() {
	s.GetConfig().Claims.DefaultStatus = "Nonexistent"
	defer func() { s.GetConfig().Claims.DefaultStatus = types.ClaimStatusSubmitted }()

	_, err := s.service.GetDefaultStatus(s.GetContext())
	s.Require().Error(err)
	s.True(ierr.IsUnexpected(err))
}
