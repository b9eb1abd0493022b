package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/domain/claim"
	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	"github.com/claimsdesk/claims-service/internal/domain/document"
	"github.com/claimsdesk/claims-service/internal/domain/notification"
	"github.com/claimsdesk/claims-service/internal/domain/policy"
	"github.com/claimsdesk/claims-service/internal/interfaces"
	"github.com/claimsdesk/claims-service/internal/metrics"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/h2non/filetype"
	"github.com/samber/lo"
)

const defaultFileType = "application/octet-stream"

type ClaimService = interfaces.ClaimService

type claimService struct {
	ServiceParams
}

func NewClaimService(params ServiceParams) ClaimService {
	return &claimService{
		ServiceParams: params,
	}
}

// SubmitClaim runs validate, persist and publish in that order. Errors carry
// the failing stage in their reportable details. The event is staged in the
// outbox within the persist transaction, so a publish failure leaves both the
// claim and its pending event committed; it is returned alongside the response.
func (s *claimService) SubmitClaim(ctx context.Context, req dto.SubmitClaimRequest) (*dto.ClaimResponse, error) {
	log := s.Logger.WithContext(ctx)

	started := time.Now()
	if err := req.Validate(); err != nil {
		s.Metrics.IncSubmission(metrics.OutcomeValidationFailed)
		return nil, withStage(err, types.SubmissionStageValidate)
	}
	s.Metrics.ObserveStage(string(types.SubmissionStageValidate), time.Since(started))

	status, err := NewClaimStatusService(s.ServiceParams).GetDefaultStatus(ctx)
	if err != nil {
		s.Metrics.IncSubmission(metrics.OutcomePersistFailed)
		return nil, withStage(err, types.SubmissionStagePersist)
	}

	cl := req.Claimant.ToClaimant(ctx)
	if err := sealCard(s.Encryption, cl); err != nil {
		s.Metrics.IncSubmission(metrics.OutcomeValidationFailed)
		return nil, withStage(err, types.SubmissionStageValidate)
	}
	pol := req.ToPolicy(ctx, cl.ID)
	c := req.ToClaim(ctx, cl.ID, pol.ID, status.ID)
	docs := lo.Map(req.Documents, func(d dto.DocumentRequest, _ int) *document.Document {
		doc := d.ToDocument(ctx, c.ID)
		doc.FileType = inferFileType(doc.FileName, doc.FileType)
		return doc
	})

	env, err := s.ClaimPublisher.NewSubmittedEnvelope(&claim.SubmittedEvent{
		ClaimID:      c.ID,
		Description:  c.Description,
		Amount:       types.NewAmount(c.Amount),
		PolicyNumber: pol.PolicyNumber,
	})
	if err != nil {
		s.Metrics.IncSubmission(metrics.OutcomePersistFailed)
		return nil, withStage(err, types.SubmissionStagePersist)
	}

	outbox := NewNotificationService(s.ServiceParams)
	var staged *notification.Notification

	started = time.Now()
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.ClaimantRepo.Create(txCtx, cl); err != nil {
			return err
		}
		if err := s.PolicyRepo.Create(txCtx, pol); err != nil {
			return err
		}
		if err := s.ClaimRepo.Create(txCtx, c); err != nil {
			return err
		}
		for _, doc := range docs {
			if err := s.DocumentRepo.Create(txCtx, doc); err != nil {
				return err
			}
		}
		var err error
		staged, err = outbox.StageClaimEvent(txCtx, env)
		return err
	})
	s.Metrics.ObserveStage(string(types.SubmissionStagePersist), time.Since(started))
	if err != nil {
		s.Metrics.IncSubmission(metrics.OutcomePersistFailed)
		log.Errorw("failed to persist claim submission", "claim_id", c.ID, "error", err)
		return nil, withStage(asDatabaseError(err, "Failed to save claim"), types.SubmissionStagePersist)
	}

	log.Infow("claim persisted",
		"claim_id", c.ID,
		"claimant_id", cl.ID,
		"policy_id", pol.ID,
		"documents", len(docs),
	)

	resp := dto.NewClaimResponse(c, cl, pol, status, types.NotificationStatusPublished)
	resp.Documents = lo.Map(docs, func(d *document.Document, _ int) *dto.DocumentResponse {
		return dto.NewDocumentResponse(d)
	})

	started = time.Now()
	err = outbox.DispatchStaged(ctx, staged)
	s.Metrics.ObserveStage(string(types.SubmissionStagePublish), time.Since(started))
	if err != nil {
		s.Metrics.IncSubmission(metrics.OutcomeNotificationFailed)
		resp.NotificationStatus = types.NotificationStatusPending
		return resp, withStage(err, types.SubmissionStagePublish)
	}

	s.Metrics.IncSubmission(metrics.OutcomeSubmitted)
	return resp, nil
}

func (s *claimService) GetClaim(ctx context.Context, id string, includeDeleted bool) (*dto.ClaimResponse, error) {
	c, err := s.ClaimRepo.Get(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}

	resp, err := s.toResponse(ctx, c, newClaimLookup())
	if err != nil {
		return nil, err
	}

	docs, err := s.DocumentRepo.List(ctx, &types.DocumentFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		ClaimID:     id,
	})
	if err != nil {
		return nil, err
	}
	resp.Documents = lo.Map(docs, func(d *document.Document, _ int) *dto.DocumentResponse {
		return dto.NewDocumentResponse(d)
	})
	return resp, nil
}

func (s *claimService) ListClaims(ctx context.Context, filter *types.ClaimFilter) (*dto.ListClaimsResponse, error) {
	if filter == nil {
		filter = types.NewClaimFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.ClaimRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ClaimRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	lookup := newClaimLookup()
	items := make([]*dto.ClaimResponse, 0, len(claims))
	for _, c := range claims {
		resp, err := s.toResponse(ctx, c, lookup)
		if err != nil {
			return nil, err
		}
		items = append(items, resp)
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// DeleteClaim soft deletes the claim and removes its documents in the same transaction
func (s *claimService) DeleteClaim(ctx context.Context, id string) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.ClaimRepo.Get(txCtx, id, false); err != nil {
			return err
		}

		removed, err := s.DocumentRepo.DeleteByClaim(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.ClaimRepo.Delete(txCtx, id); err != nil {
			return err
		}

		s.Logger.WithContext(ctx).Infow("claim deleted",
			"claim_id", id,
			"documents_removed", removed,
		)
		return nil
	})
}

func (s *claimService) ListDocuments(ctx context.Context, claimID string) (*dto.ListDocumentsResponse, error) {
	if _, err := s.ClaimRepo.Get(ctx, claimID, false); err != nil {
		return nil, err
	}

	filter := types.NewDocumentFilter()
	filter.ClaimID = claimID
	docs, err := s.DocumentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(docs, func(d *document.Document, _ int) *dto.DocumentResponse {
		return dto.NewDocumentResponse(d)
	})
	resp := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *claimService) AttachDocument(ctx context.Context, claimID string, req dto.DocumentRequest) (*dto.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doc := req.ToDocument(ctx, claimID)
	doc.FileType = inferFileType(doc.FileName, doc.FileType)

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.ClaimRepo.Get(txCtx, claimID, false); err != nil {
			return err
		}
		return s.DocumentRepo.Create(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("document attached",
		"claim_id", claimID,
		"document_id", doc.ID,
		"file_type", doc.FileType,
	)
	return dto.NewDocumentResponse(doc), nil
}

// claimLookup memoizes the rows a page of claims shares
type claimLookup struct {
	claimants map[string]*claimant.Claimant
	policies  map[string]*policy.Policy
}

func newClaimLookup() *claimLookup {
	return &claimLookup{
		claimants: make(map[string]*claimant.Claimant),
		policies:  make(map[string]*policy.Policy),
	}
}

func (s *claimService) toResponse(ctx context.Context, c *claim.Claim, lookup *claimLookup) (*dto.ClaimResponse, error) {
	cl, ok := lookup.claimants[c.ClaimantID]
	if !ok {
		var err error
		if cl, err = s.ClaimantRepo.Get(ctx, c.ClaimantID, true); err != nil {
			return nil, err
		}
		lookup.claimants[c.ClaimantID] = cl
	}

	pol, ok := lookup.policies[c.PolicyID]
	if !ok {
		var err error
		if pol, err = s.PolicyRepo.Get(ctx, c.PolicyID, true); err != nil {
			return nil, err
		}
		lookup.policies[c.PolicyID] = pol
	}

	status, err := (&claimStatusService{ServiceParams: s.ServiceParams}).getStatus(ctx, c.StatusID)
	if err != nil {
		return nil, err
	}

	notificationStatus, err := NewNotificationService(s.ServiceParams).GetNotificationStatus(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewClaimResponse(c, cl, pol, status, notificationStatus), nil
}

// inferFileType keeps a declared MIME type and otherwise derives one from the file extension
func inferFileType(fileName, declared string) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if ext == "" {
		return defaultFileType
	}
	kind := filetype.GetType(ext)
	if kind == filetype.Unknown {
		return defaultFileType
	}
	return kind.MIME.Value
}
