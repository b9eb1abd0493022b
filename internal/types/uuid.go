package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex clm_01HZX3J8Q6W0V6Q9C2M4K7T1BD
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_CLAIMANT     = "clmt"
	UUID_PREFIX_POLICY       = "pol"
	UUID_PREFIX_CLAIM        = "clm"
	UUID_PREFIX_CLAIM_STATUS = "cst"
	UUID_PREFIX_DOCUMENT     = "doc"
	UUID_PREFIX_NOTIFICATION = "ntf"
	UUID_PREFIX_MESSAGE      = "msg"
)
