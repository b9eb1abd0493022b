package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"

	"github.com/claimsdesk/claims-service/internal/config"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "claims-service/claimant-card/v1"

// EncryptionService seals claimant payment card fields at rest
type EncryptionService interface {
	// Encrypt encrypts plaintext using AES-GCM
	Encrypt(plaintext string) (string, error)

	// Decrypt decrypts ciphertext using AES-GCM
	Decrypt(ciphertext string) (string, error)

	// Hash creates a one-way hash of the input value using SHA-256
	Hash(value string) string
}

type aesEncryptionService struct {
	key    []byte
	logger *logger.Logger
}

// NewEncryptionService derives a 256-bit AES key from secrets.encryption_key
func NewEncryptionService(cfg *config.Configuration, logger *logger.Logger) (EncryptionService, error) {
	if cfg.Secrets.EncryptionKey == "" {
		return nil, ierr.NewError("master encryption key not configured").
			WithHint("Set secrets.encryption_key to store claimant card details").
			Mark(ierr.ErrSystem)
	}

	key, err := deriveKey([]byte(cfg.Secrets.EncryptionKey))
	if err != nil {
		return nil, err
	}

	return &aesEncryptionService{
		key:    key,
		logger: logger,
	}, nil
}

func deriveKey(secret []byte) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(keyInfo)), key); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to derive encryption key").
			Mark(ierr.ErrSystem)
	}
	return key, nil
}

// Encrypt encrypts plaintext using AES-GCM and returns base64-encoded ciphertext
func (s *aesEncryptionService) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	gcm, err := s.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate nonce").
			Mark(ierr.ErrSystem)
	}

	// nonce is prepended to the sealed bytes
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts base64-encoded ciphertext using AES-GCM
func (s *aesEncryptionService) Decrypt(encryptedText string) (string, error) {
	if encryptedText == "" {
		return "", nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedText)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to decode ciphertext").
			Mark(ierr.ErrSystem)
	}

	gcm, err := s.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", ierr.NewError("ciphertext too short").
			WithHint("Stored value is not a valid ciphertext").
			Mark(ierr.ErrSystem)
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		s.logger.Errorw("failed to decrypt value", "error", err)
		return "", ierr.WithError(err).
			WithHint("Failed to decrypt value").
			Mark(ierr.ErrSystem)
	}

	return string(plaintext), nil
}

// Hash creates a one-way hash of the input value using SHA-256
func (s *aesEncryptionService) Hash(value string) string {
	hasher := sha256.New()
	hasher.Write([]byte(value))
	return hex.EncodeToString(hasher.Sum(nil))
}

func (s *aesEncryptionService) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create cipher block").
			Mark(ierr.ErrSystem)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create GCM").
			Mark(ierr.ErrSystem)
	}
	return gcm, nil
}

// GenerateRandomKey returns a hex encoded 32 byte key suitable for secrets.encryption_key
func GenerateRandomKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate random key").
			Mark(ierr.ErrSystem)
	}
	return hex.EncodeToString(key), nil
}
