package service

import (
	"testing"
	"time"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/testutil"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/stretchr/testify/suite"
)

type PolicyServiceSuite struct {
	testutil.BaseServiceTestSuite
	service         PolicyService
	claimantService ClaimantService
	claimService    ClaimService
	claimantID      string
}

func TestPolicyService(t *testing.T) {
	suite.Run(t, new(PolicyServiceSuite))
}

func (s *PolicyServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewPolicyService(params)
	s.claimantService = NewClaimantService(params)
	s.claimService = NewClaimService(params)

	cl, err := s.claimantService.CreateClaimant(s.GetContext(), *testutil.NewClaimantRequest("holder@example.com"))
	s.Require().NoError(err)
	s.claimantID = cl.ClaimantID
}

func (s *PolicyServiceSuite) newRequest(number string) dto.CreatePolicyRequest {
	start := types.NewDate(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	return dto.CreatePolicyRequest{
		ClaimantID:   s.claimantID,
		PolicyNumber: number,
		PolicyType:   "Comprehensive",
		StartDate:    start,
		EndDate:      start.AddYears(1),
	}
}

func (s *PolicyServiceSuite) TestCreatePolicy() {
	resp, err := s.service.CreatePolicy(s.GetContext(), s.newRequest("AUTO-1"))
	s.Require().NoError(err)
	s.NotEmpty(resp.PolicyID)
	s.Equal("AUTO-1", resp.PolicyNumber)
	s.Equal("2025-01-01", resp.EndDate.String())
}

func (s *PolicyServiceSuite) TestCreatePolicyDuplicateNumber() {
	_, err := s.service.CreatePolicy(s.GetContext(), s.newRequest("AUTO-1"))
	s.Require().NoError(err)

	_, err = s.service.CreatePolicy(s.GetContext(), s.newRequest("AUTO-1"))
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))
	s.Equal("Policy number 'AUTO-1' already exists for this claimant.", ierr.GetDisplayMessage(err))

	// the same number is fine for another claimant
	other, err := s.claimantService.CreateClaimant(s.GetContext(), *testutil.NewClaimantRequest("other@example.com"))
	s.Require().NoError(err)
	req := s.newRequest("AUTO-1")
	req.ClaimantID = other.ClaimantID
	_, err = s.service.CreatePolicy(s.GetContext(), req)
	s.NoError(err)
}

func (s *PolicyServiceSuite) TestCreatePolicyValidation() {
	req := s.newRequest("AUTO-2")
	req.EndDate = types.NewDate(time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC))
	_, err := s.service.CreatePolicy(s.GetContext(), req)
	s.True(ierr.IsValidation(err))

	req = s.newRequest("AUTO-2")
	req.ClaimantID = "cla_missing"
	_, err = s.service.CreatePolicy(s.GetContext(), req)
	s.True(ierr.IsNotFound(err))
}

func (s *PolicyServiceSuite) TestGetPolicyDetails() {
	created, err := s.service.CreatePolicy(s.GetContext(), s.newRequest("AUTO-3"))
	s.Require().NoError(err)

	details, err := s.service.GetPolicyDetails(s.GetContext(), created.PolicyID, false)
	s.Require().NoError(err)
	s.Require().NotNil(details.ClaimantDetails)
	s.Equal(s.claimantID, details.ClaimantDetails.ClaimantID)
	s.Equal("holder@example.com", details.ClaimantDetails.Email)

	plain, err := s.service.GetPolicy(s.GetContext(), created.PolicyID, false)
	s.Require().NoError(err)
	s.Nil(plain.ClaimantDetails)
}

func (s *PolicyServiceSuite) TestUpdatePolicy() {
	created, err := s.service.CreatePolicy(s.GetContext(), s.newRequest("AUTO-4"))
	s.Require().NoError(err)
	_, err = s.service.CreatePolicy(s.GetContext(), s.newRequest("AUTO-5"))
	s.Require().NoError(err)

	base := s.newRequest("AUTO-4B")
	req := dto.UpdatePolicyRequest{
		ClaimantID:   base.ClaimantID,
		PolicyNumber: base.PolicyNumber,
		PolicyType:   "Third Party",
		StartDate:    base.StartDate,
		EndDate:      base.EndDate,
	}
	updated, err := s.service.UpdatePolicy(s.GetContext(), created.PolicyID, req)
	s.Require().NoError(err)
	s.Equal("AUTO-4B", updated.PolicyNumber)
	s.Equal("Third Party", updated.PolicyType)

	req.PolicyNumber = "AUTO-5"
	_, err = s.service.UpdatePolicy(s.GetContext(), created.PolicyID, req)
	s.True(ierr.IsAlreadyExists(err))

	req.PolicyNumber = "AUTO-4B"
	req.PolicyID = "pol_other"
	_, err = s.service.UpdatePolicy(s.GetContext(), created.PolicyID, req)
	s.True(ierr.IsValidation(err))
	s.Equal("Policy ID mismatch", ierr.GetDisplayMessage(err))
}

func (s *PolicyServiceSuite) TestUpdatePolicyClaimantWithClaims() {
	submitted, err := s.claimService.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-2"))
	s.Require().NoError(err)
	p, err := s.service.GetPolicy(s.GetContext(), submitted.PolicyID, false)
	s.Require().NoError(err)

	req := dto.UpdatePolicyRequest{
		ClaimantID:   s.claimantID,
		PolicyNumber: p.PolicyNumber,
		PolicyType:   p.PolicyType,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
	}
	_, err = s.service.UpdatePolicy(s.GetContext(), p.PolicyID, req)
	s.Require().Error(err)
	s.True(ierr.IsConflict(err))

	got, err := s.claimService.GetClaim(s.GetContext(), submitted.ClaimID, false)
	s.Require().NoError(err)
	s.Equal(p.ClaimantID, got.ClaimantID)

	// the claimant stays editable for everything else
	req.ClaimantID = p.ClaimantID
	req.PolicyType = "Third Party"
	updated, err := s.service.UpdatePolicy(s.GetContext(), p.PolicyID, req)
	s.Require().NoError(err)
	s.Equal("Third Party", updated.PolicyType)

	// once the claim is gone the policy can move
	s.Require().NoError(s.claimService.DeleteClaim(s.GetContext(), submitted.ClaimID))
	req.ClaimantID = s.claimantID
	updated, err = s.service.UpdatePolicy(s.GetContext(), p.PolicyID, req)
	s.Require().NoError(err)
	s.Equal(s.claimantID, updated.ClaimantID)
}

func (s *PolicyServiceSuite) TestDeletePolicyWithClaims() {
	submitted, err := s.claimService.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-1"))
	s.Require().NoError(err)

	err = s.service.DeletePolicy(s.GetContext(), submitted.PolicyID)
	s.True(ierr.IsConflict(err))

	created, err := s.service.CreatePolicy(s.GetContext(), s.newRequest("AUTO-6"))
	s.Require().NoError(err)
	s.Require().NoError(s.service.DeletePolicy(s.GetContext(), created.PolicyID))

	_, err = s.service.GetPolicy(s.GetContext(), created.PolicyID, false)
	s.True(ierr.IsNotFound(err))

	// a deleted policy frees its number
	_, err = s.service.CreatePolicy(s.GetContext(), s.newRequest("AUTO-6"))
	s.NoError(err)
}

func (s *PolicyServiceSuite) TestListPolicies() {
	for _, number := range []string{"AUTO-7", "AUTO-8"} {
		_, err := s.service.CreatePolicy(s.GetContext(), s.newRequest(number))
		s.Require().NoError(err)
	}

	filter := types.NewPolicyFilter()
	filter.ClaimantID = s.claimantID
	resp, err := s.service.ListPolicies(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
}
