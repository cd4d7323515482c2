// Package service provides the envelope encryption engine and the key services it
// depends on. Values are encrypted with AES-256-CTR and authenticated with an HMAC,
// both keyed by a single-use data key minted by a key management service.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
)

// KeyService mints and unwraps data keys under a master key it alone controls.
type KeyService interface {
	// GenerateDataKey returns a fresh DataKeySize-byte key together with its wrapped form.
	GenerateDataKey(ctx context.Context) (*cryptoDomain.DataKey, error)

	// Decrypt unwraps a previously generated data key.
	Decrypt(ctx context.Context, wrapped []byte) (*cryptoDomain.DataKey, error)
}

// KMSKeeper is the subset of *secrets.Keeper used by KeeperKeyService.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// EnvelopeService encrypts values under fresh data keys and verifies them on the way back.
type EnvelopeService interface {
	// Encrypt mints a new data key and uses it once to encrypt and authenticate value.
	Encrypt(ctx context.Context, value []byte) (*cryptoDomain.EncryptedPayload, error)

	// Decrypt unwraps the payload's data key, verifies the HMAC and only then decrypts.
	Decrypt(ctx context.Context, payload *cryptoDomain.EncryptedPayload) ([]byte, error)
}
