package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
	credentialMocks "github.com/allisson/credstash/internal/credential/usecase/mocks"
	"github.com/allisson/credstash/internal/metrics"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func expectMetrics(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "credentials", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "credentials", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestNewCredentialUseCaseWithMetrics(t *testing.T) {
	t.Parallel()

	decorator := NewCredentialUseCaseWithMetrics(&credentialMocks.MockCredentialUseCase{}, &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*CredentialUseCase)(nil), decorator)
}

func TestMetricsDecorator_Put(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &credentialMocks.MockCredentialUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Put", ctx, "db", []byte("v")).Return("0000000000000000001", nil).Once()
		expectMetrics(ctx, mockMetrics, "credential_put", "success")

		version, err := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics).Put(ctx, "db", []byte("v"))

		assert.NoError(t, err)
		assert.Equal(t, "0000000000000000001", version)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &credentialMocks.MockCredentialUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		expectedError := errors.New("store error")

		mockUseCase.On("Put", ctx, "db", []byte("v")).Return("", expectedError).Once()
		expectMetrics(ctx, mockMetrics, "credential_put", "error")

		_, err := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics).Put(ctx, "db", []byte("v"))

		assert.Equal(t, expectedError, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockUseCase := &credentialMocks.MockCredentialUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("Get", ctx, "db").Return("", credentialDomain.ErrCredentialNotFound).Once()
	expectMetrics(ctx, mockMetrics, "credential_get", "not_found")

	_, err := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics).Get(ctx, "db")

	assert.ErrorIs(t, err, credentialDomain.ErrCredentialNotFound)
	mockMetrics.AssertExpectations(t)
}

func TestMetricsDecorator_GetVersion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockUseCase := &credentialMocks.MockCredentialUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("GetVersion", ctx, "db", "0000000000000000002").Return("old", nil).Once()
	expectMetrics(ctx, mockMetrics, "credential_get_version", "success")

	value, err := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics).
		GetVersion(ctx, "db", "0000000000000000002")

	assert.NoError(t, err)
	assert.Equal(t, "old", value)
	mockMetrics.AssertExpectations(t)
}

func TestMetricsDecorator_GetAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockUseCase := &credentialMocks.MockCredentialUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	names := []string{"a", "b"}

	mockUseCase.On("GetAll", ctx, names).Return(map[string]string{"a": "1", "b": "2"}, nil).Once()
	expectMetrics(ctx, mockMetrics, "credential_get_all", "success")

	values, err := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics).GetAll(ctx, names)

	assert.NoError(t, err)
	assert.Len(t, values, 2)
	mockMetrics.AssertExpectations(t)
}

func TestMetricsDecorator_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockUseCase := &credentialMocks.MockCredentialUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("List", ctx).Return(nil, errors.New("scan failed")).Once()
	expectMetrics(ctx, mockMetrics, "credential_list", "error")

	credentials, err := NewCredentialUseCaseWithMetrics(mockUseCase, mockMetrics).List(ctx)

	assert.Error(t, err)
	assert.Nil(t, credentials)
	mockMetrics.AssertExpectations(t)
}
