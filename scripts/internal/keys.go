package internal

import (
	"fmt"

	"github.com/claimsdesk/claims-service/internal/security"
)

// GenerateEncryptionKey prints a fresh key for sealing claimant card details
func GenerateEncryptionKey() error {
	key, err := security.GenerateRandomKey()
	if err != nil {
		return err
	}

	fmt.Printf("\nNew Encryption Key Generated:\n")
	fmt.Printf("%s\n", key)
	fmt.Printf("\nAdd this to your config.yaml under secrets.encryption_key\n")
	fmt.Printf("or set this environment variable:\n")
	fmt.Printf("CLAIMS_SECRETS_ENCRYPTION_KEY='%s'\n", key)
	return nil
}
