package claimstatus

import (
	"github.com/claimsdesk/claims-service/internal/types"
)

// ClaimStatus is a label a claim can carry, e.g. "Submitted"
type ClaimStatus struct {
	ID         string `db:"id" json:"id"`
	StatusName string `db:"status_name" json:"status_name"`

	types.BaseModel
}
