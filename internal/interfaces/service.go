package interfaces

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/api/dto"
	"github.com/claimsdesk/claims-service/internal/domain/claimstatus"
	"github.com/claimsdesk/claims-service/internal/domain/notification"
	"github.com/claimsdesk/claims-service/internal/publisher"
	"github.com/claimsdesk/claims-service/internal/types"
)

// ClaimService defines the interface for claim operations
type ClaimService interface {
	// SubmitClaim validates, persists and announces a new claim. When only the
	// announcement fails it returns the response together with an
	// ErrNotification error.
	SubmitClaim(ctx context.Context, req dto.SubmitClaimRequest) (*dto.ClaimResponse, error)
	GetClaim(ctx context.Context, id string, includeDeleted bool) (*dto.ClaimResponse, error)
	ListClaims(ctx context.Context, filter *types.ClaimFilter) (*dto.ListClaimsResponse, error)
	DeleteClaim(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, claimID string) (*dto.ListDocumentsResponse, error)
	AttachDocument(ctx context.Context, claimID string, req dto.DocumentRequest) (*dto.DocumentResponse, error)
}

// ClaimantService defines the interface for claimant operations
type ClaimantService interface {
	CreateClaimant(ctx context.Context, req dto.ClaimantRequest) (*dto.ClaimantResponse, error)
	GetClaimant(ctx context.Context, id string, includeDeleted bool) (*dto.ClaimantResponse, error)
	ListClaimants(ctx context.Context, filter *types.ClaimantFilter) (*dto.ListClaimantsResponse, error)
	UpdateClaimant(ctx context.Context, id string, req dto.ClaimantRequest) (*dto.ClaimantResponse, error)
	DeleteClaimant(ctx context.Context, id string) error
}

// PolicyService defines the interface for policy operations
type PolicyService interface {
	CreatePolicy(ctx context.Context, req dto.CreatePolicyRequest) (*dto.PolicyResponse, error)
	GetPolicy(ctx context.Context, id string, includeDeleted bool) (*dto.PolicyResponse, error)
	// GetPolicyDetails embeds the owning claimant
	GetPolicyDetails(ctx context.Context, id string, includeDeleted bool) (*dto.PolicyResponse, error)
	ListPolicies(ctx context.Context, filter *types.PolicyFilter) (*dto.ListPoliciesResponse, error)
	UpdatePolicy(ctx context.Context, id string, req dto.UpdatePolicyRequest) (*dto.PolicyResponse, error)
	DeletePolicy(ctx context.Context, id string) error
}

// ClaimStatusService defines the interface for claim status operations
type ClaimStatusService interface {
	CreateClaimStatus(ctx context.Context, req dto.CreateClaimStatusRequest) (*dto.ClaimStatusResponse, error)
	ListClaimStatuses(ctx context.Context, filter *types.ClaimStatusFilter) (*dto.ListClaimStatusesResponse, error)
	DeleteClaimStatus(ctx context.Context, id string) error
	// GetDefaultStatus resolves claims.default_status by name
	GetDefaultStatus(ctx context.Context) (*claimstatus.ClaimStatus, error)
}

// NotificationService owns the claim event outbox: every event is staged with
// its claim and tracked until the broker accepts it
type NotificationService interface {
	StageClaimEvent(ctx context.Context, env *publisher.Envelope) (*notification.Notification, error)
	DispatchStaged(ctx context.Context, n *notification.Notification) error
	ReplayClaimNotification(ctx context.Context, claimID string) (*dto.NotificationResponse, error)
	RelayPending(ctx context.Context) (*dto.RelayResult, error)
	GetNotificationStatus(ctx context.Context, claimID string) (types.NotificationStatus, error)
}
