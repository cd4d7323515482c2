// Package mocks provides testify mock implementations of the credential use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
)

// MockCredentialUseCase is a mock implementation of CredentialUseCase for testing.
type MockCredentialUseCase struct {
	mock.Mock
}

// Put mocks the Put method of CredentialUseCase.
func (m *MockCredentialUseCase) Put(ctx context.Context, name string, value []byte) (string, error) {
	args := m.Called(ctx, name, value)
	return args.String(0), args.Error(1)
}

// Get mocks the Get method of CredentialUseCase.
func (m *MockCredentialUseCase) Get(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

// GetVersion mocks the GetVersion method of CredentialUseCase.
func (m *MockCredentialUseCase) GetVersion(ctx context.Context, name, version string) (string, error) {
	args := m.Called(ctx, name, version)
	return args.String(0), args.Error(1)
}

// GetAll mocks the GetAll method of CredentialUseCase.
func (m *MockCredentialUseCase) GetAll(ctx context.Context, names []string) (map[string]string, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// List mocks the List method of CredentialUseCase.
func (m *MockCredentialUseCase) List(ctx context.Context) ([]*credentialDomain.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.Credential), args.Error(1)
}
