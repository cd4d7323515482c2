package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
	apperrors "github.com/allisson/credstash/internal/errors"
)

// mockKMSClient is a mock implementation of KMSClient.
type mockKMSClient struct {
	mock.Mock
}

func (m *mockKMSClient) GenerateDataKey(
	ctx context.Context,
	params *kms.GenerateDataKeyInput,
	optFns ...func(*kms.Options),
) (*kms.GenerateDataKeyOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kms.GenerateDataKeyOutput), args.Error(1)
}

func (m *mockKMSClient) Decrypt(
	ctx context.Context,
	params *kms.DecryptInput,
	optFns ...func(*kms.Options),
) (*kms.DecryptOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kms.DecryptOutput), args.Error(1)
}

func TestAWSKMSKeyService_GenerateDataKey(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := &mockKMSClient{}
		plaintext := bytes.Repeat([]byte{0x07}, cryptoDomain.DataKeySize)
		wrapped := []byte("wrapped-blob")

		client.On("GenerateDataKey", ctx, mock.MatchedBy(func(in *kms.GenerateDataKeyInput) bool {
			return *in.KeyId == "alias/credstash" && *in.NumberOfBytes == cryptoDomain.DataKeySize
		})).Return(&kms.GenerateDataKeyOutput{Plaintext: plaintext, CiphertextBlob: wrapped}, nil).Once()

		keyService := NewAWSKMSKeyService(client, "alias/credstash")
		dataKey, err := keyService.GenerateDataKey(ctx)

		require.NoError(t, err)
		assert.Equal(t, wrapped, dataKey.Wrapped())
		client.AssertExpectations(t)
	})

	t.Run("Error_WrongKeySize", func(t *testing.T) {
		client := &mockKMSClient{}
		client.On("GenerateDataKey", ctx, mock.Anything).
			Return(&kms.GenerateDataKeyOutput{Plaintext: make([]byte, 32), CiphertextBlob: []byte("x")}, nil).
			Once()

		dataKey, err := NewAWSKMSKeyService(client, "alias/credstash").GenerateDataKey(ctx)
		assert.Nil(t, dataKey)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidDataKeySize)
	})

	t.Run("Error_NonAPIError", func(t *testing.T) {
		client := &mockKMSClient{}
		cause := errors.New("dial tcp: connection refused")
		client.On("GenerateDataKey", ctx, mock.Anything).Return(nil, cause).Once()

		dataKey, err := NewAWSKMSKeyService(client, "alias/credstash").GenerateDataKey(ctx)
		assert.Nil(t, dataKey)
		assert.ErrorIs(t, err, cryptoDomain.ErrDataKeyGeneration)
		assert.ErrorIs(t, err, apperrors.ErrEncryptionService)
		assert.ErrorIs(t, err, cause)
	})
}

func TestAWSKMSKeyService_Decrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := &mockKMSClient{}
		wrapped := []byte("wrapped-blob")
		plaintext := bytes.Repeat([]byte{0x09}, cryptoDomain.DataKeySize)

		client.On("Decrypt", ctx, mock.MatchedBy(func(in *kms.DecryptInput) bool {
			return bytes.Equal(in.CiphertextBlob, wrapped)
		})).Return(&kms.DecryptOutput{Plaintext: plaintext}, nil).Once()

		dataKey, err := NewAWSKMSKeyService(client, "alias/credstash").Decrypt(ctx, wrapped)
		require.NoError(t, err)
		assert.Equal(t, wrapped, dataKey.Wrapped())
		client.AssertExpectations(t)
	})
}

func TestClassifyKMSError(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{name: "AccessDenied", code: "AccessDeniedException", wantErr: cryptoDomain.ErrKMSAccessDenied},
		{name: "NotFound", code: "NotFoundException", wantErr: cryptoDomain.ErrKMSKeyUnavailable},
		{name: "Disabled", code: "DisabledException", wantErr: cryptoDomain.ErrKMSKeyUnavailable},
		{name: "Throttling", code: "ThrottlingException", wantErr: cryptoDomain.ErrKMSThrottled},
		{name: "InvalidCiphertext", code: "InvalidCiphertextException", wantErr: cryptoDomain.ErrKMSInvalidCiphertext},
		{name: "Unknown", code: "InternalFailure", wantErr: cryptoDomain.ErrDataKeyDecryption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := &smithy.GenericAPIError{Code: tt.code, Message: "test"}

			err := classifyKMSError(cryptoDomain.ErrDataKeyDecryption, apiErr)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrEncryptionService)

			var got smithy.APIError
			require.True(t, errors.As(err, &got))
			assert.Equal(t, tt.code, got.ErrorCode())
		})
	}
}
