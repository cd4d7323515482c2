package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
)

// MockEnvelopeService is a mock implementation of EnvelopeService for testing.
type MockEnvelopeService struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of EnvelopeService.
func (m *MockEnvelopeService) Encrypt(ctx context.Context, value []byte) (*cryptoDomain.EncryptedPayload, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.EncryptedPayload), args.Error(1)
}

// Decrypt mocks the Decrypt method of EnvelopeService.
func (m *MockEnvelopeService) Decrypt(
	ctx context.Context,
	payload *cryptoDomain.EncryptedPayload,
) ([]byte, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
