package types

import (
	"time"
)

// ClaimantFilter represents filters for claimant queries
type ClaimantFilter struct {
	*QueryFilter
	Email string `json:"email,omitempty" form:"email"`
}

func NewClaimantFilter() *ClaimantFilter {
	return &ClaimantFilter{QueryFilter: NewDefaultQueryFilter()}
}

// PolicyFilter represents filters for policy queries
type PolicyFilter struct {
	*QueryFilter
	ClaimantID   string `json:"claimant_id,omitempty" form:"claimantId"`
	PolicyNumber string `json:"policy_number,omitempty" form:"policyNumber"`
}

func NewPolicyFilter() *PolicyFilter {
	return &PolicyFilter{QueryFilter: NewDefaultQueryFilter()}
}

// ClaimFilter represents filters for claim queries
type ClaimFilter struct {
	*QueryFilter
	ClaimantID string `json:"claimant_id,omitempty" form:"claimantId"`
	PolicyID   string `json:"policy_id,omitempty" form:"policyId"`
	StatusID   string `json:"status_id,omitempty" form:"statusId"`
}

func NewClaimFilter() *ClaimFilter {
	return &ClaimFilter{QueryFilter: NewDefaultQueryFilter()}
}

// ClaimStatusFilter represents filters for claim status queries
type ClaimStatusFilter struct {
	*QueryFilter
}

func NewClaimStatusFilter() *ClaimStatusFilter {
	return &ClaimStatusFilter{QueryFilter: NewNoLimitQueryFilter()}
}

// DocumentFilter represents filters for document queries
type DocumentFilter struct {
	*QueryFilter
	ClaimID string `json:"claim_id,omitempty" form:"claimId"`
}

func NewDocumentFilter() *DocumentFilter {
	return &DocumentFilter{QueryFilter: NewNoLimitQueryFilter()}
}

// NotificationFilter represents filters for outbox notification queries
type NotificationFilter struct {
	*QueryFilter
	ClaimID   string              `json:"claim_id,omitempty"`
	States    []NotificationState `json:"states,omitempty"`
	DueBefore *time.Time          `json:"due_before,omitempty"`
}

func NewNotificationFilter() *NotificationFilter {
	return &NotificationFilter{QueryFilter: NewDefaultQueryFilter()}
}
