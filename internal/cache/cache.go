package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache holds reference data that changes rarely, such as claim statuses.
// Values are stored as-is; callers must not mutate what Get returns.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	// Set stores value under key. A zero expiration uses the cache default.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
	Flush(ctx context.Context)
}

const (
	PrefixClaimStatus       = "claim_status:v1:"
	PrefixClaimStatusByName = "claim_status_name:v1:"
)

// GenerateKey appends params to prefix, colon separated
func GenerateKey(prefix string, params ...interface{}) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, param := range params {
		b.WriteByte(':')
		fmt.Fprint(&b, param)
	}
	return b.String()
}
