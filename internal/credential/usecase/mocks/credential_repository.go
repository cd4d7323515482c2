package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
)

// MockCredentialRepository is a mock implementation of CredentialRepository for testing.
type MockCredentialRepository struct {
	mock.Mock
}

// Create mocks the Create method of CredentialRepository.
func (m *MockCredentialRepository) Create(ctx context.Context, credential *credentialDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// GetLatest mocks the GetLatest method of CredentialRepository.
func (m *MockCredentialRepository) GetLatest(
	ctx context.Context,
	name string,
) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// GetByVersion mocks the GetByVersion method of CredentialRepository.
func (m *MockCredentialRepository) GetByVersion(
	ctx context.Context,
	name, version string,
) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, name, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// List mocks the List method of CredentialRepository.
func (m *MockCredentialRepository) List(ctx context.Context) ([]*credentialDomain.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.Credential), args.Error(1)
}
