// Package usecase defines the credential store facade. It orchestrates the envelope
// encryption engine, the versioning policy and a credential repository.
package usecase

import (
	"context"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
)

// CredentialRepository defines the ordered, append-only store of credential records.
type CredentialRepository interface {
	// Create appends a record. It fails with ErrVersionConflict if the name and version
	// already exist and never overwrites.
	Create(ctx context.Context, credential *credentialDomain.Credential) error
	// GetLatest returns the highest version for name using a strongly consistent read.
	GetLatest(ctx context.Context, name string) (*credentialDomain.Credential, error)
	// GetByVersion returns one specific version of name.
	GetByVersion(ctx context.Context, name, version string) (*credentialDomain.Credential, error)
	// List returns the name and version of every record, ordered by name then version.
	// Payload fields are left empty.
	List(ctx context.Context) ([]*credentialDomain.Credential, error)
}

// CredentialUseCase defines the operations exposed to callers.
type CredentialUseCase interface {
	// Put encrypts value under a fresh data key and appends it as the next version of
	// name. It returns the assigned version.
	Put(ctx context.Context, name string, value []byte) (string, error)
	// Get returns the value of the highest version of name.
	Get(ctx context.Context, name string) (string, error)
	// GetVersion returns the value of a specific version of name.
	GetVersion(ctx context.Context, name, version string) (string, error)
	// GetAll returns the latest value of every name, or the first error encountered.
	// Either the full mapping or an error is returned, never both.
	GetAll(ctx context.Context, names []string) (map[string]string, error)
	// List returns the name and version of every stored record.
	List(ctx context.Context) ([]*credentialDomain.Credential, error)
}
