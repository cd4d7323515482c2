package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
	cryptoService "github.com/allisson/credstash/internal/crypto/service"
	"github.com/allisson/credstash/internal/validation"
)

// DefaultGetAllConcurrency bounds the number of in-flight lookups in GetAll.
const DefaultGetAllConcurrency = 10

// Option configures a credential use case.
type Option func(*credentialUseCase)

// WithGetAllConcurrency bounds the number of concurrent lookups performed by GetAll.
// Values below 1 remove the bound.
func WithGetAllConcurrency(n int) Option {
	return func(c *credentialUseCase) {
		c.concurrency = n
	}
}

// WithGetAllRateLimiter paces GetAll lookups so large batches stay under key service quotas.
func WithGetAllRateLimiter(limiter *rate.Limiter) Option {
	return func(c *credentialUseCase) {
		c.limiter = limiter
	}
}

// credentialUseCase implements CredentialUseCase.
type credentialUseCase struct {
	credentialRepo CredentialRepository
	envelope       cryptoService.EnvelopeService
	concurrency    int
	limiter        *rate.Limiter
}

// Put encrypts first so the data key is minted and consumed before the version is
// read. Two concurrent puts to the same name may compute the same version; the
// repository rejects the second with ErrVersionConflict.
func (c *credentialUseCase) Put(ctx context.Context, name string, value []byte) (string, error) {
	if err := validation.ValidateName(name); err != nil {
		return "", err
	}

	payload, err := c.envelope.Encrypt(ctx, value)
	if err != nil {
		return "", err
	}

	var latest *uint64
	current, err := c.credentialRepo.GetLatest(ctx, name)
	switch {
	case errors.Is(err, credentialDomain.ErrCredentialNotFound):
	case err != nil:
		return "", err
	default:
		v, err := credentialDomain.ParseVersion(current.Version)
		if err != nil {
			return "", err
		}
		latest = &v
	}

	version, err := credentialDomain.NextVersion(latest)
	if err != nil {
		return "", err
	}

	credential := &credentialDomain.Credential{
		Name:             name,
		Version:          version,
		EncryptedPayload: *payload,
	}
	if err := c.credentialRepo.Create(ctx, credential); err != nil {
		return "", err
	}

	return version, nil
}

// Get retrieves and decrypts the latest version of name.
func (c *credentialUseCase) Get(ctx context.Context, name string) (string, error) {
	if err := validation.ValidateName(name); err != nil {
		return "", err
	}

	credential, err := c.credentialRepo.GetLatest(ctx, name)
	if err != nil {
		return "", err
	}

	return c.decrypt(ctx, credential)
}

// GetVersion retrieves and decrypts a specific version of name.
func (c *credentialUseCase) GetVersion(ctx context.Context, name, version string) (string, error) {
	if err := validation.ValidateName(name); err != nil {
		return "", err
	}
	if err := validation.ValidateVersion(version); err != nil {
		return "", err
	}

	credential, err := c.credentialRepo.GetByVersion(ctx, name, version)
	if err != nil {
		return "", err
	}

	return c.decrypt(ctx, credential)
}

// GetAll fans out one Get per distinct name. Each lookup writes only its own slot, and
// the mapping is assembled after every lookup has succeeded. The first failure cancels
// the remaining lookups and is returned alone.
func (c *credentialUseCase) GetAll(ctx context.Context, names []string) (map[string]string, error) {
	unique := dedupe(names)
	values := make([]string, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	for i, name := range unique {
		g.Go(func() error {
			if c.limiter != nil {
				if err := c.limiter.Wait(gctx); err != nil {
					return err
				}
			}

			value, err := c.Get(gctx, name)
			if err != nil {
				return err
			}
			values[i] = value
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]string, len(unique))
	for i, name := range unique {
		result[name] = values[i]
	}
	return result, nil
}

// List returns every stored name and version.
func (c *credentialUseCase) List(ctx context.Context) ([]*credentialDomain.Credential, error) {
	return c.credentialRepo.List(ctx)
}

// decrypt runs the envelope engine over a stored record.
func (c *credentialUseCase) decrypt(
	ctx context.Context,
	credential *credentialDomain.Credential,
) (string, error) {
	plaintext, err := c.envelope.Decrypt(ctx, &credential.EncryptedPayload)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// dedupe returns names without duplicates, keeping first occurrences in order.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	return unique
}

// NewCredentialUseCase creates a new credential use case instance with the provided dependencies.
func NewCredentialUseCase(
	credentialRepo CredentialRepository,
	envelope cryptoService.EnvelopeService,
	opts ...Option,
) CredentialUseCase {
	c := &credentialUseCase{
		credentialRepo: credentialRepo,
		envelope:       envelope,
		concurrency:    DefaultGetAllConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
