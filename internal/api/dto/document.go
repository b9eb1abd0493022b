package dto

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/domain/document"
	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/claimsdesk/claims-service/internal/validator"
)

// DocumentRequest references a file already held in storage
type DocumentRequest struct {
	FileName string `json:"fileName" validate:"required,max=255"`
	FilePath string `json:"filePath" validate:"required,max=500"`
	// FileType is inferred from the file name when empty
	FileType string `json:"fileType,omitempty" validate:"omitempty,max=50"`
}

func (r *DocumentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *DocumentRequest) ToDocument(ctx context.Context, claimID string) *document.Document {
	return &document.Document{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT),
		ClaimID:   claimID,
		FileName:  r.FileName,
		FilePath:  r.FilePath,
		FileType:  r.FileType,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type DocumentResponse struct {
	DocumentID string `json:"documentId"`
	ClaimID    string `json:"claimId"`
	FileName   string `json:"fileName"`
	FilePath   string `json:"filePath"`
	FileType   string `json:"fileType"`
}

func NewDocumentResponse(d *document.Document) *DocumentResponse {
	return &DocumentResponse{
		DocumentID: d.ID,
		ClaimID:    d.ClaimID,
		FileName:   d.FileName,
		FilePath:   d.FilePath,
		FileType:   d.FileType,
	}
}

type ListDocumentsResponse = types.ListResponse[*DocumentResponse]
