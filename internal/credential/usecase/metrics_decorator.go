package usecase

import (
	"context"
	"time"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
	"github.com/allisson/credstash/internal/metrics"
)

const metricsDomain = "credentials"

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *credentialUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	c.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	c.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Put records metrics for credential writes.
func (c *credentialUseCaseWithMetrics) Put(ctx context.Context, name string, value []byte) (string, error) {
	start := time.Now()
	version, err := c.next.Put(ctx, name, value)
	c.record(ctx, "credential_put", start, err)
	return version, err
}

// Get records metrics for latest-version reads.
func (c *credentialUseCaseWithMetrics) Get(ctx context.Context, name string) (string, error) {
	start := time.Now()
	value, err := c.next.Get(ctx, name)
	c.record(ctx, "credential_get", start, err)
	return value, err
}

// GetVersion records metrics for versioned reads.
func (c *credentialUseCaseWithMetrics) GetVersion(ctx context.Context, name, version string) (string, error) {
	start := time.Now()
	value, err := c.next.GetVersion(ctx, name, version)
	c.record(ctx, "credential_get_version", start, err)
	return value, err
}

// GetAll records metrics for batch reads.
func (c *credentialUseCaseWithMetrics) GetAll(ctx context.Context, names []string) (map[string]string, error) {
	start := time.Now()
	values, err := c.next.GetAll(ctx, names)
	c.record(ctx, "credential_get_all", start, err)
	return values, err
}

// List records metrics for listing operations.
func (c *credentialUseCaseWithMetrics) List(ctx context.Context) ([]*credentialDomain.Credential, error) {
	start := time.Now()
	credentials, err := c.next.List(ctx)
	c.record(ctx, "credential_list", start, err)
	return credentials, err
}
