package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/domain/claim"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/metrics"
	"github.com/claimsdesk/claims-service/internal/testutil"
	"github.com/claimsdesk/claims-service/internal/types"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ClaimServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ClaimService
}

func TestClaimService(t *testing.T) {
	suite.Run(t, new(ClaimServiceSuite))
}

func (s *ClaimServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewClaimService(newTestServiceParams(&s.BaseServiceTestSuite))
}

// newTestServiceParams wires every service dependency to the suite's in-memory doubles
func newTestServiceParams(b *testutil.BaseServiceTestSuite) ServiceParams {
	return NewServiceParams(
		b.GetLogger(),
		b.GetConfig(),
		b.GetRepositories(),
		b.GetClaimPublisher(),
		b.GetEncryption(),
		b.GetCache(),
		b.GetMetrics(),
		b.GetSentry(),
	)
}

func (s *ClaimServiceSuite) counts() (claimants, policies, claims, documents int) {
	store := s.GetStore()
	return store.Claimants.Len(), store.Policies.Len(), store.Claims.Len(), store.Documents.Len()
}

func (s *ClaimServiceSuite) TestSubmitClaim() {
	req := testutil.NewSubmitClaimRequest("POL-1001")

	resp, err := s.service.SubmitClaim(s.GetContext(), req)
	s.Require().NoError(err)
	s.Require().NotNil(resp)

	s.NotEmpty(resp.ClaimID)
	s.Equal(types.ClaimStatusSubmitted, resp.Status)
	s.Equal("Ada Lovelace", resp.ClaimantName)
	s.Equal("ada@example.com", resp.ClaimantEmail)
	s.Equal("POL-1001", resp.PolicyNumber)
	s.True(req.Amount.Equal(resp.Amount.Decimal))
	s.Equal(types.NotificationStatusPublished, resp.NotificationStatus)
	s.Len(resp.Documents, 2)

	claimants, policies, claims, documents := s.counts()
	s.Equal(1, claimants)
	s.Equal(1, policies)
	s.Equal(1, claims)
	s.Equal(2, documents)

	stored, err := s.GetRepositories().ClaimRepo.Get(s.GetContext(), resp.ClaimID, false)
	s.Require().NoError(err)
	s.Equal(resp.ClaimantID, stored.ClaimantID)
	s.Equal(resp.PolicyID, stored.PolicyID)

	pol, err := s.GetRepositories().PolicyRepo.Get(s.GetContext(), resp.PolicyID, false)
	s.Require().NoError(err)
	s.Equal(resp.ClaimantID, pol.ClaimantID)
	s.Equal(types.DefaultPolicyType, pol.PolicyType)
	s.Equal(req.DateOfIncident, pol.EffectiveDate)
	s.Equal(req.DateOfIncident.AddYears(1), pol.ExpirationDate)

	msgs := s.GetPubSub().GetMessages(s.GetConfig().Messaging.ClaimsSubmittedDestination)
	s.Require().Len(msgs, 1)
	var event claim.SubmittedEvent
	s.Require().NoError(json.Unmarshal(msgs[0].Payload, &event))
	s.Equal(resp.ClaimID, event.ClaimID)
	s.Equal("POL-1001", event.PolicyNumber)
	s.True(req.Amount.Equal(event.Amount.Decimal))

	s.Equal(float64(1), promtestutil.ToFloat64(s.GetMetrics().Submissions.WithLabelValues(metrics.OutcomeSubmitted)))
}

func (s *ClaimServiceSuite) TestSubmitClaimInfersDocumentTypes() {
	req := testutil.NewSubmitClaimRequest("POL-1002")
	req.Documents = append(req.Documents, dto.DocumentRequest{
		FileName: "notes",
		FilePath: "/uploads/notes",
	}, dto.DocumentRequest{
		FileName: "estimate.bin",
		FilePath: "/uploads/estimate.bin",
		FileType: "text/plain",
	})

	resp, err := s.service.SubmitClaim(s.GetContext(), req)
	s.Require().NoError(err)

	fileTypes := make(map[string]string, len(resp.Documents))
	for _, d := range resp.Documents {
		fileTypes[d.FileName] = d.FileType
	}
	s.Equal("application/pdf", fileTypes["police-report.pdf"])
	s.Equal("image/jpeg", fileTypes["bumper.jpg"])
	s.Equal("application/octet-stream", fileTypes["notes"])
	s.Equal("text/plain", fileTypes["estimate.bin"])
}

func (s *ClaimServiceSuite) TestSubmitClaimValidation() {
	testCases := []struct {
		name    string
		mutate  func(r *dto.SubmitClaimRequest)
		message string
	}{
		{
			name:    "zero_amount",
			mutate:  func(r *dto.SubmitClaimRequest) { r.Amount = decimal.Zero },
			message: "Amount must be greater than zero.",
		},
		{
			name:    "fraction_of_a_cent",
			mutate:  func(r *dto.SubmitClaimRequest) { r.Amount = decimal.RequireFromString("1500.005") },
			message: "Amount must have at most 2 decimal places.",
		},
		{
			name:    "amount_too_large",
			mutate:  func(r *dto.SubmitClaimRequest) { r.Amount = decimal.RequireFromString("1e20") },
			message: "Amount must not exceed 9999999999999999.99.",
		},
		{
			name:    "short_description",
			mutate:  func(r *dto.SubmitClaimRequest) { r.Description = "dent" },
			message: "Description must be at least 10 characters long.",
		},
		{
			name: "mismatched_confirm_email",
			mutate: func(r *dto.SubmitClaimRequest) {
				r.Claimant.ConfirmEmail = "someone@example.com"
			},
			message: "Confirm email must match email.",
		},
		{
			name: "incident_in_future",
			mutate: func(r *dto.SubmitClaimRequest) {
				r.DateOfIncident = types.NewDate(time.Now().UTC().AddDate(0, 0, 2))
			},
			message: "Date of incident cannot be in the future.",
		},
		{
			name:    "missing_claimant",
			mutate:  func(r *dto.SubmitClaimRequest) { r.Claimant = nil },
			message: "Claimant information is required.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := testutil.NewSubmitClaimRequest("POL-2000")
			tc.mutate(&req)

			resp, err := s.service.SubmitClaim(s.GetContext(), req)
			s.Nil(resp)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
			s.Equal(string(types.SubmissionStageValidate), ierr.GetReportableDetails(err)["stage"])
			s.Contains(fieldMessages(err), tc.message)

			claimants, policies, claims, documents := s.counts()
			s.Zero(claimants + policies + claims + documents)
			s.Zero(s.GetPubSub().Attempts())
		})
	}
}

func (s *ClaimServiceSuite) TestSubmitClaimRollsBackOnPersistFailure() {
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	params.ClaimRepo = &testutil.FailingClaimRepository{
		Repository: params.ClaimRepo,
		FailCreate: errors.New("connection reset by peer"),
	}
	svc := NewClaimService(params)

	resp, err := svc.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-3000"))
	s.Nil(resp)
	s.Require().Error(err)
	s.True(ierr.IsDatabase(err))
	s.Equal(string(types.SubmissionStagePersist), ierr.GetReportableDetails(err)["stage"])

	claimants, policies, claims, documents := s.counts()
	s.Zero(claimants)
	s.Zero(policies)
	s.Zero(claims)
	s.Zero(documents)
	s.Zero(s.GetPubSub().Attempts())
}

func (s *ClaimServiceSuite) TestSubmitClaimRollsBackOnDocumentFailure() {
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	params.DocumentRepo = &testutil.FailingDocumentRepository{
		Repository: params.DocumentRepo,
		FailAfter:  1,
		FailCreate: errors.New("disk full"),
	}
	svc := NewClaimService(params)

	_, err := svc.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-3001"))
	s.Require().Error(err)

	claimants, policies, claims, documents := s.counts()
	s.Zero(claimants + policies + claims + documents)
}

func (s *ClaimServiceSuite) TestSubmitClaimPublishFailure() {
	s.GetPubSub().SetFailure(errors.New("broker unavailable"))

	resp, err := s.service.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-4000"))
	s.Require().Error(err)
	s.True(ierr.IsNotification(err))
	s.Equal(string(types.SubmissionStagePublish), ierr.GetReportableDetails(err)["stage"])

	// the claim stays committed and the caller still gets it back
	s.Require().NotNil(resp)
	s.Equal(types.NotificationStatusPending, resp.NotificationStatus)
	_, err = s.GetRepositories().ClaimRepo.Get(s.GetContext(), resp.ClaimID, false)
	s.NoError(err)

	parked, err := s.GetRepositories().NotificationRepo.GetLatestByClaim(s.GetContext(), resp.ClaimID)
	s.Require().NoError(err)
	s.Equal(types.NotificationStatePending, parked.State)
	s.Equal(1, parked.Attempts)
	s.Contains(parked.LastError, "broker unavailable")

	got, err := s.service.GetClaim(s.GetContext(), resp.ClaimID, false)
	s.Require().NoError(err)
	s.Equal(types.NotificationStatusPending, got.NotificationStatus)

	s.Equal(float64(1), promtestutil.ToFloat64(s.GetMetrics().Submissions.WithLabelValues(metrics.OutcomeNotificationFailed)))
}

func (s *ClaimServiceSuite) TestSubmitClaimStagesEventWithClaim() {
	resp, err := s.service.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-4001"))
	s.Require().NoError(err)

	n, err := s.GetRepositories().NotificationRepo.GetLatestByClaim(s.GetContext(), resp.ClaimID)
	s.Require().NoError(err)
	s.Equal(types.NotificationStateSent, n.State)
	s.NotNil(n.SentAt)
}

func (s *ClaimServiceSuite) TestSubmitClaimRollsBackWhenOutboxWriteFails() {
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	params.NotificationRepo = &testutil.FailingNotificationRepository{
		Repository: params.NotificationRepo,
		FailCreate: errors.New("outbox table locked"),
	}
	svc := NewClaimService(params)

	resp, err := svc.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-4002"))
	s.Nil(resp)
	s.Require().Error(err)
	s.True(ierr.IsDatabase(err))
	s.Equal(string(types.SubmissionStagePersist), ierr.GetReportableDetails(err)["stage"])

	claimants, policies, claims, documents := s.counts()
	s.Zero(claimants + policies + claims + documents)
	s.Zero(s.GetPubSub().Attempts())
}

func (s *ClaimServiceSuite) TestSubmitClaimPublishFailureWithUnrecordedOutcome() {
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	params.NotificationRepo = &testutil.FailingNotificationRepository{
		Repository: params.NotificationRepo,
		FailUpdate: errors.New("connection reset by peer"),
	}
	svc := NewClaimService(params)
	s.GetPubSub().SetFailure(errors.New("broker down"))

	resp, err := svc.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-4003"))
	s.Require().Error(err)
	s.True(ierr.IsNotification(err))
	s.Require().NotNil(resp)
	s.Equal(types.NotificationStatusPending, resp.NotificationStatus)

	// the staged entry is still pending, so reads and the relay agree with the response
	got, err := s.service.GetClaim(s.GetContext(), resp.ClaimID, false)
	s.Require().NoError(err)
	s.Equal(types.NotificationStatusPending, got.NotificationStatus)

	s.GetPubSub().SetFailure(nil)
	time.Sleep(5 * time.Millisecond)
	result, err := NewNotificationService(newTestServiceParams(&s.BaseServiceTestSuite)).RelayPending(s.GetContext())
	s.Require().NoError(err)
	s.Equal(1, result.Sent)

	got, err = s.service.GetClaim(s.GetContext(), resp.ClaimID, false)
	s.Require().NoError(err)
	s.Equal(types.NotificationStatusPublished, got.NotificationStatus)
}

func (s *ClaimServiceSuite) TestSubmitClaimWithCardDetails() {
	req := testutil.NewSubmitClaimRequest("POL-5000")
	req.Claimant.CardNumber = "4111111111111111"
	req.Claimant.CardExpiry = "12/29"
	req.Claimant.CardCVV = "123"

	resp, err := s.service.SubmitClaim(s.GetContext(), req)
	s.Require().NoError(err)

	stored, err := s.GetRepositories().ClaimantRepo.Get(s.GetContext(), resp.ClaimantID, false)
	s.Require().NoError(err)
	s.NotEqual("4111111111111111", stored.CardNumber)
	s.NotEqual("123", stored.CardCVV)

	opened, err := s.GetEncryption().Decrypt(stored.CardNumber)
	s.Require().NoError(err)
	s.Equal("4111111111111111", opened)
}

func (s *ClaimServiceSuite) TestSubmitClaimCardWithoutEncryption() {
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	params.Encryption = nil
	svc := NewClaimService(params)

	req := testutil.NewSubmitClaimRequest("POL-5001")
	req.Claimant.CardNumber = "4111111111111111"

	_, err := svc.SubmitClaim(s.GetContext(), req)
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
	s.Equal("Payment card details cannot be stored because encryption is not configured", ierr.GetDisplayMessage(err))

	claimants, _, _, _ := s.counts()
	s.Zero(claimants)
}

func (s *ClaimServiceSuite) TestGetClaim() {
	created, err := s.service.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-6000"))
	s.Require().NoError(err)

	got, err := s.service.GetClaim(s.GetContext(), created.ClaimID, false)
	s.Require().NoError(err)
	s.Equal(created.ClaimID, got.ClaimID)
	s.Equal(types.ClaimStatusSubmitted, got.Status)
	s.Len(got.Documents, 2)

	_, err = s.service.GetClaim(s.GetContext(), "clm_missing", false)
	s.True(ierr.IsNotFound(err))
}

func (s *ClaimServiceSuite) TestListClaims() {
	for _, number := range []string{"POL-7000", "POL-7001", "POL-7002"} {
		_, err := s.service.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest(number))
		s.Require().NoError(err)
	}

	filter := types.NewClaimFilter()
	filter.Limit = lo.ToPtr(2)
	resp, err := s.service.ListClaims(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(3, resp.Pagination.Total)
	s.Equal(2, resp.Pagination.Limit)
	for _, item := range resp.Items {
		s.Equal(types.ClaimStatusSubmitted, item.Status)
		s.NotEmpty(item.ClaimantName)
	}
}

func (s *ClaimServiceSuite) TestDeleteClaim() {
	created, err := s.service.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-8000"))
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteClaim(s.GetContext(), created.ClaimID))

	// documents go with the claim
	_, _, _, documents := s.counts()
	s.Zero(documents)

	_, err = s.service.GetClaim(s.GetContext(), created.ClaimID, false)
	s.True(ierr.IsNotFound(err))

	deleted, err := s.service.GetClaim(s.GetContext(), created.ClaimID, true)
	s.Require().NoError(err)
	s.True(deleted.IsDeleted)

	err = s.service.DeleteClaim(s.GetContext(), created.ClaimID)
	s.True(ierr.IsNotFound(err))
}

func (s *ClaimServiceSuite) TestAttachDocument() {
	created, err := s.service.SubmitClaim(s.GetContext(), testutil.NewSubmitClaimRequest("POL-9000"))
	s.Require().NoError(err)

	doc, err := s.service.AttachDocument(s.GetContext(), created.ClaimID, dto.DocumentRequest{
		FileName: "invoice.png",
		FilePath: "/uploads/invoice.png",
	})
	s.Require().NoError(err)
	s.Equal(created.ClaimID, doc.ClaimID)
	s.Equal("image/png", doc.FileType)

	docs, err := s.service.ListDocuments(s.GetContext(), created.ClaimID)
	s.Require().NoError(err)
	s.Len(docs.Items, 3)

	_, err = s.service.AttachDocument(s.GetContext(), "clm_missing", dto.DocumentRequest{
		FileName: "invoice.png",
		FilePath: "/uploads/invoice.png",
	})
	s.True(ierr.IsNotFound(err))

	_, err = s.service.AttachDocument(s.GetContext(), created.ClaimID, dto.DocumentRequest{})
	s.True(ierr.IsValidation(err))
}

func TestInferFileType(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		declared string
		want     string
	}{
		{"declared_wins", "photo.jpg", "image/heic", "image/heic"},
		{"pdf", "report.PDF", "", "application/pdf"},
		{"png", "scan.png", "", "image/png"},
		{"no_extension", "README", "", "application/octet-stream"},
		{"unknown_extension", "data.zzz", "", "application/octet-stream"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := inferFileType(tc.fileName, tc.declared); got != tc.want {
				t.Errorf("inferFileType(%q, %q) = %q, want %q", tc.fileName, tc.declared, got, tc.want)
			}
		})
	}
}

// fieldMessages flattens the per-field messages carried by a validation error
func fieldMessages(err error) []string {
	details := ierr.GetReportableDetails(err)
	raw, ok := details["errors"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			if msg, ok := m["message"].(string); ok {
				out = append(out, msg)
			}
		}
	}
	return out
}
