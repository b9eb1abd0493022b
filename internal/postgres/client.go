package postgres

import (
	"context"
)

// IClient is the unit of work. Every repository call made with the context
// handed to fn joins the same transaction; a returned error or a panic rolls
// all of them back, otherwise they commit together.
type IClient interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
