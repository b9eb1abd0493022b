package document

import (
	"github.com/claimsdesk/claims-service/internal/types"
)

// Document references a stored file attached to a claim
type Document struct {
	ID       string `db:"id" json:"id"`
	ClaimID  string `db:"claim_id" json:"claim_id"`
	FileName string `db:"file_name" json:"file_name"`
	FilePath string `db:"file_path" json:"file_path"`
	FileType string `db:"file_type" json:"file_type"`

	types.BaseModel
}
