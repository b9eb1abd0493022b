package types

import (
	"context"
	"time"
)

// BaseModel carries the audit and soft-delete columns shared by every persisted entity.
// Any changes to this model should be reflected in the database schema by adding a migration
type BaseModel struct {
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	CreatedBy string     `db:"created_by" json:"created_by"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	UpdatedBy string     `db:"updated_by" json:"updated_by,omitempty"`
	IsDeleted bool       `db:"is_deleted" json:"is_deleted"`
}

func GetDefaultBaseModel(ctx context.Context) BaseModel {
	return BaseModel{
		CreatedAt: time.Now().UTC(),
		CreatedBy: GetUserID(ctx),
	}
}

// EnsureCreated fills the creation columns when the caller left them empty
func (b *BaseModel) EnsureCreated(ctx context.Context) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.CreatedBy == "" {
		b.CreatedBy = GetUserID(ctx)
	}
}

// Touch stamps the update columns with the current time and the user in context.
func (b *BaseModel) Touch(ctx context.Context) {
	now := time.Now().UTC()
	b.UpdatedAt = &now
	b.UpdatedBy = GetUserID(ctx)
}
