package security

import (
	"strings"
	"testing"

	"github.com/claimsdesk/claims-service/internal/config"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, key string) EncryptionService {
	cfg := config.GetDefaultConfig()
	cfg.Secrets.EncryptionKey = key
	svc, err := NewEncryptionService(cfg, logger.NewNoopLogger())
	require.NoError(t, err)
	return svc
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc := newTestService(t, "local-development-key")

	sealed, err := svc.Encrypt("4111111111111111")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "4111")

	opened, err := svc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", opened)
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	svc := newTestService(t, "local-development-key")

	a, err := svc.Encrypt("123")
	require.NoError(t, err)
	b, err := svc.Encrypt("123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEmptyValuesPassThrough(t *testing.T) {
	svc := newTestService(t, "local-development-key")

	sealed, err := svc.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, sealed)

	opened, err := svc.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, opened)
}

func TestDecryptWithDifferentKeyFails(t *testing.T) {
	sealed, err := newTestService(t, "key-one").Encrypt("12/29")
	require.NoError(t, err)

	_, err = newTestService(t, "key-two").Decrypt(sealed)
	require.Error(t, err)
	assert.True(t, ierr.IsUnexpected(err))
}

func TestDecryptRejectsGarbage(t *testing.T) {
	svc := newTestService(t, "local-development-key")

	_, err := svc.Decrypt("not base64!")
	assert.Error(t, err)

	_, err = svc.Decrypt("YQ==")
	assert.Error(t, err)
}

func TestMissingKey(t *testing.T) {
	_, err := NewEncryptionService(config.GetDefaultConfig(), logger.NewNoopLogger())
	assert.Error(t, err)
}

func TestGenerateRandomKey(t *testing.T) {
	key, err := GenerateRandomKey()
	require.NoError(t, err)
	assert.Len(t, key, 64)
	assert.Equal(t, strings.ToLower(key), key)
}
