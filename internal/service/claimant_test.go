package service

import (
	"testing"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/testutil"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/stretchr/testify/suite"
)

type ClaimantServiceSuite struct {
	testutil.BaseServiceTestSuite
	service      ClaimantService
	claimService ClaimService
}

func TestClaimantService(t *testing.T) {
	suite.Run(t, new(ClaimantServiceSuite))
}

func (s *ClaimantServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewClaimantService(params)
	s.claimService = NewClaimService(params)
}

func (s *ClaimantServiceSuite) TestCreateClaimant() {
	testCases := []struct {
		name          string
		request       func() dto.ClaimantRequest
		expectedError bool
		errorCode     string
	}{
		{
			name: "successful_creation",
			request: func() dto.ClaimantRequest {
				return *testutil.NewClaimantRequest("grace@example.com")
			},
		},
		{
			name: "invalid_email",
			request: func() dto.ClaimantRequest {
				return *testutil.NewClaimantRequest("not-an-email")
			},
			expectedError: true,
			errorCode:     ierr.ErrCodeValidation,
		},
		{
			name: "missing_names",
			request: func() dto.ClaimantRequest {
				req := testutil.NewClaimantRequest("grace@example.com")
				req.FirstName = ""
				req.LastName = ""
				return *req
			},
			expectedError: true,
			errorCode:     ierr.ErrCodeValidation,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.CreateClaimant(s.GetContext(), tc.request())
			if tc.expectedError {
				s.Error(err)
				s.Equal(tc.errorCode, ierr.Code(err))
				return
			}
			s.Require().NoError(err)
			s.NotEmpty(resp.ClaimantID)
			s.Equal("grace@example.com", resp.Email)
		})
	}
}

func (s *ClaimantServiceSuite) TestCardDetailsAreMasked() {
	req := testutil.NewClaimantRequest("grace@example.com")
	req.CardNumber = "4111 1111 1111 1111"
	req.CardExpiry = "01/30"
	req.CardCVV = "999"
	req.CardHolder = "Grace Hopper"

	resp, err := s.service.CreateClaimant(s.GetContext(), *req)
	s.Require().NoError(err)
	s.Equal("************1111", resp.CardNumber)
	s.Equal("01/30", resp.CardExpiry)
	s.Equal("Grace Hopper", resp.CardHolder)

	stored, err := s.GetRepositories().ClaimantRepo.Get(s.GetContext(), resp.ClaimantID, false)
	s.Require().NoError(err)
	s.NotContains(stored.CardNumber, "1111")
	s.NotEqual("999", stored.CardCVV)

	got, err := s.service.GetClaimant(s.GetContext(), resp.ClaimantID, false)
	s.Require().NoError(err)
	s.Equal("************1111", got.CardNumber)
}

func (s *ClaimantServiceSuite) TestUpdateClaimant() {
	created, err := s.service.CreateClaimant(s.GetContext(), *testutil.NewClaimantRequest("grace@example.com"))
	s.Require().NoError(err)

	req := testutil.NewClaimantRequest("hopper@example.com")
	req.City = "Arlington"
	updated, err := s.service.UpdateClaimant(s.GetContext(), created.ClaimantID, *req)
	s.Require().NoError(err)
	s.Equal("hopper@example.com", updated.Email)
	s.Equal("Arlington", updated.City)

	req.ClaimantID = "cla_other"
	_, err = s.service.UpdateClaimant(s.GetContext(), created.ClaimantID, *req)
	s.True(ierr.IsValidation(err))
	s.Equal("Claimant ID in route and body do not match", ierr.GetDisplayMessage(err))

	_, err = s.service.UpdateClaimant(s.GetContext(), "cla_missing", *testutil.NewClaimantRequest("x@example.com"))
	s.True(ierr.IsNotFound(err))
}

func (s *ClaimantServiceSuite) TestDeleteClaimantWithClaims() {
	submitted, err := s.claimService.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-1"))
	s.Require().NoError(err)

	err = s.service.DeleteClaimant(s.GetContext(), submitted.ClaimantID)
	s.Require().Error(err)
	s.True(ierr.IsConflict(err))

	// once the claim is gone the claimant can go too
	s.Require().NoError(s.claimService.DeleteClaim(s.GetContext(), submitted.ClaimID))
	s.Require().NoError(s.service.DeleteClaimant(s.GetContext(), submitted.ClaimantID))

	_, err = s.service.GetClaimant(s.GetContext(), submitted.ClaimantID, false)
	s.True(ierr.IsNotFound(err))
	got, err := s.service.GetClaimant(s.GetContext(), submitted.ClaimantID, true)
	s.Require().NoError(err)
	s.True(got.IsDeleted)
}

func (s *ClaimantServiceSuite) TestListClaimants() {
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := s.service.CreateClaimant(s.GetContext(), *testutil.NewClaimantRequest(email))
		s.Require().NoError(err)
	}

	resp, err := s.service.ListClaimants(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Len(resp.Items, 3)
	s.Equal(3, resp.Pagination.Total)

	filter := types.NewClaimantFilter()
	filter.Email = "b@example.com"
	resp, err = s.service.ListClaimants(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal("b@example.com", resp.Items[0].Email)
}
