package testutil

import (
	"context"

	"github.com/claimsdesk/claims-service/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, "usr_test")
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	return ctx
}
