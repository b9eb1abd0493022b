package claim

import (
	"github.com/claimsdesk/claims-service/internal/types"
)

// SubmittedEvent is published once a claim and its parties are committed
type SubmittedEvent struct {
	ClaimID      string       `json:"claimId"`
	Description  string       `json:"description"`
	Amount       types.Amount `json:"amount"`
	PolicyNumber string       `json:"policyNumber"`
}

// AdjudicatedEvent is produced by downstream adjudication once a claim is decided
type AdjudicatedEvent struct {
	ClaimID        string       `json:"claimId"`
	FinalStatus    string       `json:"finalStatus"`
	AgentReasoning string       `json:"agentReasoning"`
	FinalAmount    types.Amount `json:"finalAmount"`
}
