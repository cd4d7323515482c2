package domain

import (
	"github.com/allisson/credstash/internal/errors"
)

// Cryptographic error definitions.
//
// Each error wraps one of the standard kinds from internal/errors so callers can tell
// tampering (ErrIntegrity) apart from key service failures (ErrEncryptionService) and
// misuse of a data key handle (ErrInvalidInput).
var (
	// ErrIntegrityCheckFailed indicates the recomputed HMAC does not match the stored tag.
	//
	// The ciphertext, the tag or the wrapped key was modified after the record was written,
	// or the record is corrupted. No plaintext is ever returned alongside this error.
	ErrIntegrityCheckFailed = errors.Wrap(errors.ErrIntegrity, "hmac mismatch")

	// ErrUnsupportedDigest indicates a stored record names a digest this client cannot compute.
	// New records always use DefaultDigest, so an unknown name means the record was altered.
	ErrUnsupportedDigest = errors.Wrap(errors.ErrIntegrity, "unsupported digest algorithm")

	// ErrDataKeyConsumed indicates a data key handle was used a second time.
	ErrDataKeyConsumed = errors.Wrap(errors.ErrInvalidInput, "data key already used")

	// ErrInvalidDataKeySize indicates the key service returned key material of the wrong length.
	ErrInvalidDataKeySize = errors.Wrap(errors.ErrEncryptionService, "invalid data key size")

	// ErrDataKeyGeneration indicates the key service could not mint a data key.
	ErrDataKeyGeneration = errors.Wrap(errors.ErrEncryptionService, "failed to generate data key")

	// ErrDataKeyDecryption indicates the key service could not unwrap a data key.
	ErrDataKeyDecryption = errors.Wrap(errors.ErrEncryptionService, "failed to decrypt data key")

	// ErrKMSAccessDenied indicates the caller is not allowed to use the master key.
	ErrKMSAccessDenied = errors.Wrap(errors.ErrEncryptionService, "kms access denied")

	// ErrKMSKeyUnavailable indicates the master key does not exist or is disabled.
	ErrKMSKeyUnavailable = errors.Wrap(errors.ErrEncryptionService, "kms key unavailable")

	// ErrKMSThrottled indicates the key service rejected the request due to rate limits.
	ErrKMSThrottled = errors.Wrap(errors.ErrEncryptionService, "kms request throttled")

	// ErrKMSInvalidCiphertext indicates the wrapped key was rejected by the key service.
	ErrKMSInvalidCiphertext = errors.Wrap(errors.ErrEncryptionService, "kms rejected wrapped key")
)
