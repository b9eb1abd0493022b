package service

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/domain/claimant"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/interfaces"
	"github.com/claimsdesk/claims-service/internal/security"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/samber/lo"
)

type ClaimantService = interfaces.ClaimantService

type claimantService struct {
	ServiceParams
}

func NewClaimantService(params ServiceParams) ClaimantService {
	return &claimantService{
		ServiceParams: params,
	}
}

func (s *claimantService) CreateClaimant(ctx context.Context, req dto.ClaimantRequest) (*dto.ClaimantResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToClaimant(ctx)
	if err := sealCard(s.Encryption, c); err != nil {
		return nil, err
	}

	if err := s.ClaimantRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("claimant created", "claimant_id", c.ID)
	return s.toResponse(c)
}

func (s *claimantService) GetClaimant(ctx context.Context, id string, includeDeleted bool) (*dto.ClaimantResponse, error) {
	if id == "" {
		return nil, ierr.NewError("claimant_id is required").
			WithHint("Claimant ID is required").
			Mark(ierr.ErrValidation)
	}

	c, err := s.ClaimantRepo.Get(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	return s.toResponse(c)
}

func (s *claimantService) ListClaimants(ctx context.Context, filter *types.ClaimantFilter) (*dto.ListClaimantsResponse, error) {
	if filter == nil {
		filter = types.NewClaimantFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	claimants, err := s.ClaimantRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ClaimantRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ClaimantResponse, 0, len(claimants))
	for _, c := range claimants {
		resp, err := s.toResponse(c)
		if err != nil {
			return nil, err
		}
		items = append(items, resp)
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *claimantService) UpdateClaimant(ctx context.Context, id string, req dto.ClaimantRequest) (*dto.ClaimantResponse, error) {
	if req.ClaimantID != "" && req.ClaimantID != id {
		return nil, ierr.NewErrorf("claimant id mismatch: route %s, body %s", id, req.ClaimantID).
			WithHint("Claimant ID in route and body do not match").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *claimant.Claimant
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		c, err := s.ClaimantRepo.Get(txCtx, id, false)
		if err != nil {
			return err
		}

		req.ApplyTo(c)
		if err := sealCard(s.Encryption, c); err != nil {
			return err
		}
		c.Touch(txCtx)

		if err := s.ClaimantRepo.Update(txCtx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("claimant updated", "claimant_id", id)
	return s.toResponse(updated)
}

// DeleteClaimant soft deletes a claimant no live claim refers to
func (s *claimantService) DeleteClaimant(ctx context.Context, id string) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.ClaimantRepo.Get(txCtx, id, false); err != nil {
			return err
		}

		filter := types.NewClaimFilter()
		filter.ClaimantID = id
		count, err := s.ClaimRepo.Count(txCtx, filter)
		if err != nil {
			return err
		}
		if count > 0 {
			return stillReferenced("Claimant", id, count)
		}

		if err := s.ClaimantRepo.Delete(txCtx, id); err != nil {
			return err
		}
		s.Logger.WithContext(ctx).Infow("claimant deleted", "claimant_id", id)
		return nil
	})
}

func (s *claimantService) toResponse(c *claimant.Claimant) (*dto.ClaimantResponse, error) {
	return claimantResponse(s.Encryption, c)
}

// claimantResponse opens a copy of c so the stored ciphertext is left untouched
func claimantResponse(enc security.EncryptionService, c *claimant.Claimant) (*dto.ClaimantResponse, error) {
	opened := lo.FromPtr(c)
	if err := openCard(enc, &opened); err != nil {
		return nil, err
	}
	return dto.NewClaimantResponse(&opened), nil
}

func hasCard(c *claimant.Claimant) bool {
	return c.CardNumber != "" || c.CardExpiry != "" || c.CardCVV != ""
}

// sealCard encrypts the card fields of c in place
func sealCard(enc security.EncryptionService, c *claimant.Claimant) error {
	if !hasCard(c) {
		return nil
	}
	if enc == nil {
		return ierr.NewError("card details supplied without an encryption key").
			WithHint("Payment card details cannot be stored because encryption is not configured").
			Mark(ierr.ErrInvalidOperation)
	}

	for _, field := range []*string{&c.CardNumber, &c.CardExpiry, &c.CardCVV} {
		sealed, err := enc.Encrypt(*field)
		if err != nil {
			return err
		}
		*field = sealed
	}
	return nil
}

// openCard decrypts the card fields of c in place
func openCard(enc security.EncryptionService, c *claimant.Claimant) error {
	if !hasCard(c) {
		return nil
	}
	if enc == nil {
		c.CardNumber, c.CardExpiry, c.CardCVV = "", "", ""
		return nil
	}

	for _, field := range []*string{&c.CardNumber, &c.CardExpiry, &c.CardCVV} {
		opened, err := enc.Decrypt(*field)
		if err != nil {
			return err
		}
		*field = opened
	}
	return nil
}
