package policy

import (
	"github.com/claimsdesk/claims-service/internal/types"
)

// Policy is an insurance policy owned by one claimant.
// PolicyNumber is unique among a claimant's live policies.
type Policy struct {
	ID             string     `db:"id" json:"id"`
	ClaimantID     string     `db:"claimant_id" json:"claimant_id"`
	PolicyNumber   string     `db:"policy_number" json:"policy_number"`
	PolicyType     string     `db:"policy_type" json:"policy_type"`
	EffectiveDate  types.Date `db:"effective_date" json:"effective_date"`
	ExpirationDate types.Date `db:"expiration_date" json:"expiration_date"`
	Description    string     `db:"description" json:"description"`

	types.BaseModel
}
