package types

// Seeded claim status names
const (
	ClaimStatusSubmitted   = "Submitted"
	ClaimStatusUnderReview = "Under Review"
	ClaimStatusApproved    = "Approved"
	ClaimStatusRejected    = "Rejected"
	ClaimStatusPaid        = "Paid"
)

// DefaultClaimStatuses is the status table every backend starts with
var DefaultClaimStatuses = []string{
	ClaimStatusSubmitted,
	ClaimStatusUnderReview,
	ClaimStatusApproved,
	ClaimStatusRejected,
	ClaimStatusPaid,
}

// SubmissionStage names the step of a claim submission that produced an error.
// Callers use it to tell a request rejected before any write from one that
// failed after commit.
type SubmissionStage string

const (
	SubmissionStageValidate SubmissionStage = "validate"
	SubmissionStagePersist  SubmissionStage = "persist"
	SubmissionStagePublish  SubmissionStage = "publish"
)

// NotificationState is the delivery state of an outbox notification
type NotificationState string

const (
	NotificationStatePending NotificationState = "pending"
	NotificationStateSent    NotificationState = "sent"
	NotificationStateFailed  NotificationState = "failed"
)

// NotificationStatus is reported on a submitted claim
type NotificationStatus string

const (
	NotificationStatusPublished NotificationStatus = "published"
	NotificationStatusPending   NotificationStatus = "pending"
)

const (
	DefaultPolicyType        = "Standard"
	DefaultPolicyTermYears   = 1
	EventClaimSubmitted      = "claim.submitted"
	EventClaimAdjudicated    = "claim.adjudicated"
	DefaultClaimsSubmitted   = "claims_submitted"
	DefaultClaimsAdjudicated = "claims_adjudicated"
)
