package service

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/domain/policy"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/interfaces"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/samber/lo"
)

type PolicyService = interfaces.PolicyService

type policyService struct {
	ServiceParams
}

func NewPolicyService(params ServiceParams) PolicyService {
	return &policyService{
		ServiceParams: params,
	}
}

func (s *policyService) CreatePolicy(ctx context.Context, req dto.CreatePolicyRequest) (*dto.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPolicy(ctx)
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.ClaimantRepo.Get(txCtx, p.ClaimantID, false); err != nil {
			return err
		}
		if err := s.ensureNumberAvailable(txCtx, p.ClaimantID, p.PolicyNumber, ""); err != nil {
			return err
		}
		return s.PolicyRepo.Create(txCtx, p)
	})
	if err != nil {
		return nil, s.conflictHint(err, p.PolicyNumber)
	}

	s.Logger.WithContext(ctx).Infow("policy created",
		"policy_id", p.ID,
		"claimant_id", p.ClaimantID,
	)
	return dto.NewPolicyResponse(p), nil
}

func (s *policyService) GetPolicy(ctx context.Context, id string, includeDeleted bool) (*dto.PolicyResponse, error) {
	p, err := s.PolicyRepo.Get(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	return dto.NewPolicyResponse(p), nil
}

func (s *policyService) GetPolicyDetails(ctx context.Context, id string, includeDeleted bool) (*dto.PolicyResponse, error) {
	p, err := s.PolicyRepo.Get(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}

	// the owner may have been soft deleted since
	c, err := s.ClaimantRepo.Get(ctx, p.ClaimantID, true)
	if err != nil {
		return nil, err
	}

	claimantResp, err := claimantResponse(s.Encryption, c)
	if err != nil {
		return nil, err
	}

	resp := dto.NewPolicyResponse(p)
	resp.ClaimantDetails = claimantResp
	return resp, nil
}

func (s *policyService) ListPolicies(ctx context.Context, filter *types.PolicyFilter) (*dto.ListPoliciesResponse, error) {
	if filter == nil {
		filter = types.NewPolicyFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	policies, err := s.PolicyRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.PolicyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(policies, func(p *policy.Policy, _ int) *dto.PolicyResponse {
		return dto.NewPolicyResponse(p)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *policyService) UpdatePolicy(ctx context.Context, id string, req dto.UpdatePolicyRequest) (*dto.PolicyResponse, error) {
	if req.PolicyID != "" && req.PolicyID != id {
		return nil, ierr.NewErrorf("policy id mismatch: route %s, body %s", id, req.PolicyID).
			WithHint("Policy ID mismatch").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *policy.Policy
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		p, err := s.PolicyRepo.Get(txCtx, id, false)
		if err != nil {
			return err
		}

		if p.ClaimantID != req.ClaimantID {
			if _, err := s.ClaimantRepo.Get(txCtx, req.ClaimantID, false); err != nil {
				return err
			}

			// claims carry the claimant of their policy
			filter := types.NewClaimFilter()
			filter.PolicyID = id
			count, err := s.ClaimRepo.Count(txCtx, filter)
			if err != nil {
				return err
			}
			if count > 0 {
				return claimantLocked(id, count)
			}
		}
		if p.ClaimantID != req.ClaimantID || p.PolicyNumber != req.PolicyNumber {
			if err := s.ensureNumberAvailable(txCtx, req.ClaimantID, req.PolicyNumber, id); err != nil {
				return err
			}
		}

		req.ApplyTo(p)
		p.Touch(txCtx)
		if err := s.PolicyRepo.Update(txCtx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, s.conflictHint(err, req.PolicyNumber)
	}

	s.Logger.WithContext(ctx).Infow("policy updated", "policy_id", id)
	return dto.NewPolicyResponse(updated), nil
}

// DeletePolicy soft deletes a policy no live claim refers to
func (s *policyService) DeletePolicy(ctx context.Context, id string) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.PolicyRepo.Get(txCtx, id, false); err != nil {
			return err
		}

		filter := types.NewClaimFilter()
		filter.PolicyID = id
		count, err := s.ClaimRepo.Count(txCtx, filter)
		if err != nil {
			return err
		}
		if count > 0 {
			return stillReferenced("Policy", id, count)
		}

		if err := s.PolicyRepo.Delete(txCtx, id); err != nil {
			return err
		}
		s.Logger.WithContext(ctx).Infow("policy deleted", "policy_id", id)
		return nil
	})
}

// ensureNumberAvailable rejects a policy number the claimant already holds
// on another live policy
func (s *policyService) ensureNumberAvailable(ctx context.Context, claimantID, number, selfID string) error {
	existing, err := s.PolicyRepo.GetByClaimantAndNumber(ctx, claimantID, number)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return duplicatePolicyNumber(number)
}

// conflictHint gives a unique violation raised by the store the same
// message as the pre-check
func (s *policyService) conflictHint(err error, number string) error {
	if ierr.IsAlreadyExists(err) {
		return duplicatePolicyNumber(number)
	}
	return err
}

func duplicatePolicyNumber(number string) error {
	return ierr.NewErrorf("policy number %s already exists for claimant", number).
		WithHintf("Policy number '%s' already exists for this claimant.", number).
		Mark(ierr.ErrAlreadyExists)
}
