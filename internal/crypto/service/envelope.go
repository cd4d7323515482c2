package service

import (
	"context"
	"encoding/hex"

	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
)

// envelopeService implements EnvelopeService on top of a KeyService. It holds no mutable
// state and is safe for concurrent use.
type envelopeService struct {
	keyService KeyService
	digest     cryptoDomain.Digest
}

// NewEnvelopeService creates an envelope encryption engine that signs new values with
// cryptoDomain.DefaultDigest.
func NewEnvelopeService(keyService KeyService) EnvelopeService {
	return &envelopeService{
		keyService: keyService,
		digest:     cryptoDomain.DefaultDigest,
	}
}

// Encrypt mints a data key, encrypts value with its cipher half and signs the
// ciphertext with its HMAC half.
func (e *envelopeService) Encrypt(
	ctx context.Context,
	value []byte,
) (*cryptoDomain.EncryptedPayload, error) {
	dataKey, err := e.keyService.GenerateDataKey(ctx)
	if err != nil {
		return nil, err
	}

	payload := &cryptoDomain.EncryptedPayload{
		WrappedKey: dataKey.Wrapped(),
		Digest:     e.digest,
	}

	err = dataKey.Use(func(cipherKey, hmacKey []byte) error {
		ciphertext, err := xorCTR(cipherKey, value)
		if err != nil {
			return err
		}

		tag, err := sign(e.digest, hmacKey, ciphertext)
		if err != nil {
			return err
		}

		payload.Ciphertext = ciphertext
		payload.HMAC = hex.EncodeToString(tag)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payload, nil
}

// Decrypt unwraps the data key and verifies the HMAC before touching the ciphertext.
func (e *envelopeService) Decrypt(
	ctx context.Context,
	payload *cryptoDomain.EncryptedPayload,
) ([]byte, error) {
	dataKey, err := e.keyService.Decrypt(ctx, payload.WrappedKey)
	if err != nil {
		return nil, err
	}

	var plaintext []byte
	err = dataKey.Use(func(cipherKey, hmacKey []byte) error {
		if err := verify(payload.Digest, hmacKey, payload.Ciphertext, payload.HMAC); err != nil {
			return err
		}

		out, err := xorCTR(cipherKey, payload.Ciphertext)
		if err != nil {
			return err
		}
		plaintext = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}
