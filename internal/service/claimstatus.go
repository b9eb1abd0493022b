package service

import (
	"context"
	"strings"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/cache"
	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/interfaces"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/samber/lo"
)

type ClaimStatusService = interfaces.ClaimStatusService

type claimStatusService struct {
	ServiceParams
}

func NewClaimStatusService(params ServiceParams) ClaimStatusService {
	return &claimStatusService{
		ServiceParams: params,
	}
}

func (s *claimStatusService) CreateClaimStatus(ctx context.Context, req dto.CreateClaimStatusRequest) (*dto.ClaimStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.ClaimStatusRepo.GetByName(ctx, req.StatusName)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ierr.NewErrorf("claim status %s already exists", req.StatusName).
			WithHintf("Claim status '%s' already exists.", req.StatusName).
			Mark(ierr.ErrAlreadyExists)
	}

	status := req.ToClaimStatus(ctx)
	if err := s.ClaimStatusRepo.Create(ctx, status); err != nil {
		return nil, err
	}
	return dto.NewClaimStatusResponse(status), nil
}

func (s *claimStatusService) ListClaimStatuses(ctx context.Context, filter *types.ClaimStatusFilter) (*dto.ListClaimStatusesResponse, error) {
	if filter == nil {
		filter = types.NewClaimStatusFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	}

	statuses, err := s.ClaimStatusRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(statuses, func(st *claimstatus.ClaimStatus, _ int) *dto.ClaimStatusResponse {
		return dto.NewClaimStatusResponse(st)
	})
	resp := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// DeleteClaimStatus soft deletes a status that is neither the default nor used by a live claim
func (s *claimStatusService) DeleteClaimStatus(ctx context.Context, id string) error {
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		status, err := s.ClaimStatusRepo.Get(txCtx, id, false)
		if err != nil {
			return err
		}
		if strings.EqualFold(status.StatusName, s.Config.Claims.DefaultStatus) {
			return ierr.NewErrorf("claim status %s is the default status", id).
				WithHint("The default claim status cannot be deleted").
				Mark(ierr.ErrInvalidOperation)
		}

		filter := types.NewClaimFilter()
		filter.StatusID = id
		count, err := s.ClaimRepo.Count(txCtx, filter)
		if err != nil {
			return err
		}
		if count > 0 {
			return stillReferenced("Claim status", id, count)
		}

		return s.ClaimStatusRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.Cache.DeleteByPrefix(ctx, cache.PrefixClaimStatusByName)
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixClaimStatus, id))
	return nil
}

func (s *claimStatusService) GetDefaultStatus(ctx context.Context) (*claimstatus.ClaimStatus, error) {
	name := s.Config.Claims.DefaultStatus
	key := cache.GenerateKey(cache.PrefixClaimStatusByName, strings.ToLower(name))

	if cached, found := s.Cache.Get(ctx, key); found {
		if status, ok := cached.(*claimstatus.ClaimStatus); ok {
			return status, nil
		}
	}

	status, err := s.ClaimStatusRepo.GetByName(ctx, name)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewErrorf("default claim status %s not found", name).
				WithHintf("Default claim status '%s' is not configured", name).
				Mark(ierr.ErrSystem)
		}
		return nil, err
	}

	s.Cache.Set(ctx, key, status, s.Config.Claims.StatusCacheTTL)
	return status, nil
}

// getStatus resolves a status by id through the cache. Deleted statuses
// still resolve so historical claims render their label.
func (s *claimStatusService) getStatus(ctx context.Context, id string) (*claimstatus.ClaimStatus, error) {
	key := cache.GenerateKey(cache.PrefixClaimStatus, id)
	if cached, found := s.Cache.Get(ctx, key); found {
		if status, ok := cached.(*claimstatus.ClaimStatus); ok {
			return status, nil
		}
	}

	status, err := s.ClaimStatusRepo.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, status, s.Config.Claims.StatusCacheTTL)
	return status, nil
}
