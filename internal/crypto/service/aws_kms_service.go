package service

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/smithy-go"

	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
	apperrors "github.com/allisson/credstash/internal/errors"
)

// KMSClient defines the AWS KMS operations used by AWSKMSKeyService.
type KMSClient interface {
	GenerateDataKey(
		ctx context.Context,
		params *kms.GenerateDataKeyInput,
		optFns ...func(*kms.Options),
	) (*kms.GenerateDataKeyOutput, error)
	Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error)
}

// NewKMSClient builds an AWS KMS client, optionally pointed at a custom endpoint.
func NewKMSClient(cfg aws.Config, endpoint string) *kms.Client {
	return kms.NewFromConfig(cfg, func(o *kms.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// AWSKMSKeyService implements KeyService with AWS KMS GenerateDataKey and Decrypt.
// It is safe for concurrent use.
type AWSKMSKeyService struct {
	client      KMSClient
	masterKeyID string
}

// NewAWSKMSKeyService creates a key service that mints data keys under masterKeyID,
// which may be a key ID, key ARN, alias name (alias/credstash) or alias ARN.
func NewAWSKMSKeyService(client KMSClient, masterKeyID string) *AWSKMSKeyService {
	return &AWSKMSKeyService{client: client, masterKeyID: masterKeyID}
}

// GenerateDataKey asks KMS for DataKeySize random bytes and their wrapped form.
func (a *AWSKMSKeyService) GenerateDataKey(ctx context.Context) (*cryptoDomain.DataKey, error) {
	out, err := a.client.GenerateDataKey(ctx, &kms.GenerateDataKeyInput{
		KeyId:         aws.String(a.masterKeyID),
		NumberOfBytes: aws.Int32(cryptoDomain.DataKeySize),
	})
	if err != nil {
		return nil, classifyKMSError(cryptoDomain.ErrDataKeyGeneration, err)
	}

	return cryptoDomain.NewDataKey(out.Plaintext, out.CiphertextBlob)
}

// Decrypt asks KMS to unwrap a data key. The master key is identified by KMS from
// the ciphertext blob itself.
func (a *AWSKMSKeyService) Decrypt(ctx context.Context, wrapped []byte) (*cryptoDomain.DataKey, error) {
	out, err := a.client.Decrypt(ctx, &kms.DecryptInput{
		CiphertextBlob: wrapped,
	})
	if err != nil {
		return nil, classifyKMSError(cryptoDomain.ErrDataKeyDecryption, err)
	}

	return cryptoDomain.NewDataKey(out.Plaintext, wrapped)
}

// classifyKMSError converts AWS KMS errors to key service errors.
func classifyKMSError(base, err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return apperrors.WithCause(base, err)
	}

	switch apiErr.ErrorCode() {
	case "AccessDeniedException":
		return apperrors.WithCause(cryptoDomain.ErrKMSAccessDenied, err)
	case "NotFoundException", "DisabledException", "KMSInvalidStateException", "KeyUnavailableException":
		return apperrors.WithCause(cryptoDomain.ErrKMSKeyUnavailable, err)
	case "ThrottlingException", "LimitExceededException":
		return apperrors.WithCause(cryptoDomain.ErrKMSThrottled, err)
	case "InvalidCiphertextException", "IncorrectKeyException":
		return apperrors.WithCause(cryptoDomain.ErrKMSInvalidCiphertext, err)
	default:
		return apperrors.WithCause(base, err)
	}
}
