package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"gocloud.dev/gcerrors"
	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
	apperrors "github.com/allisson/credstash/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens gocloud.dev/secrets keepers for a master key URI.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// KeeperKeyService implements KeyService with a gocloud.dev/secrets keeper.
//
// Keepers only expose encrypt/decrypt, so data keys are drawn from crypto/rand and
// wrapped by the keeper. This works uniformly across every gocloud KMS driver.
type KeeperKeyService struct {
	keeper KMSKeeper
	random io.Reader
}

// NewKeeperKeyService creates a key service that wraps data keys with keeper.
func NewKeeperKeyService(keeper KMSKeeper) *KeeperKeyService {
	return &KeeperKeyService{keeper: keeper, random: rand.Reader}
}

// GenerateDataKey draws a fresh random data key and wraps it with the keeper.
func (k *KeeperKeyService) GenerateDataKey(ctx context.Context) (*cryptoDomain.DataKey, error) {
	plaintext := make([]byte, cryptoDomain.DataKeySize)
	if _, err := io.ReadFull(k.random, plaintext); err != nil {
		return nil, apperrors.WithCause(cryptoDomain.ErrDataKeyGeneration, err)
	}

	wrapped, err := k.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		cryptoDomain.Zero(plaintext)
		return nil, classifyKeeperError(cryptoDomain.ErrDataKeyGeneration, err)
	}

	return cryptoDomain.NewDataKey(plaintext, wrapped)
}

// Decrypt unwraps a data key with the keeper.
func (k *KeeperKeyService) Decrypt(ctx context.Context, wrapped []byte) (*cryptoDomain.DataKey, error) {
	plaintext, err := k.keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, classifyKeeperError(cryptoDomain.ErrDataKeyDecryption, err)
	}

	return cryptoDomain.NewDataKey(plaintext, wrapped)
}

// Close releases the underlying keeper.
func (k *KeeperKeyService) Close() error {
	return k.keeper.Close()
}

// classifyKeeperError maps portable gocloud error codes onto key service errors.
func classifyKeeperError(base, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.WithCause(base, err)
	}

	switch gcerrors.Code(err) {
	case gcerrors.PermissionDenied:
		return apperrors.WithCause(cryptoDomain.ErrKMSAccessDenied, err)
	case gcerrors.NotFound:
		return apperrors.WithCause(cryptoDomain.ErrKMSKeyUnavailable, err)
	case gcerrors.ResourceExhausted:
		return apperrors.WithCause(cryptoDomain.ErrKMSThrottled, err)
	case gcerrors.InvalidArgument, gcerrors.FailedPrecondition:
		return apperrors.WithCause(cryptoDomain.ErrKMSInvalidCiphertext, err)
	default:
		return apperrors.WithCause(base, err)
	}
}
