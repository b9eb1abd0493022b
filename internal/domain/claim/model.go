package claim

import (
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/shopspring/decimal"
)

// Claim is a request for payment against a policy
type Claim struct {
	ID               string          `db:"id" json:"id"`
	Description      string          `db:"description" json:"description"`
	Amount           decimal.Decimal `db:"amount" json:"amount" swaggertype:"string"`
	DateOfIncident   types.Date      `db:"date_of_incident" json:"date_of_incident"`
	IncidentLocation string          `db:"incident_location" json:"incident_location"`
	ClaimantID       string          `db:"claimant_id" json:"claimant_id"`
	PolicyID         string          `db:"policy_id" json:"policy_id"`
	StatusID         string          `db:"status_id" json:"status_id"`

	types.BaseModel
}
